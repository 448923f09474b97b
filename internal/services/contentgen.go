package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/clients/solar"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

// PositionContext carries the job-position framing embedded into every
// generation prompt.
type PositionContext struct {
	PositionName        string
	CategoryName        string
	PositionDescription string
	CategoryDescription string
}

type GeneratedKeyword struct {
	Keyword     string
	Description string
}

type GeneratedReport struct {
	Title   string
	Summary string
	Content string
}

// ContentGenerator wraps the Solar API into the three content shapes the
// daily and attendance flows need. The remote reply is free text; labels
// that fail to parse fall back to deterministic strings instead of
// erroring.
type ContentGenerator interface {
	GenerateDailyKeyword(ctx context.Context, pos PositionContext) (*GeneratedKeyword, error)
	GenerateDailyReport(ctx context.Context, pos PositionContext) (*GeneratedReport, error)
	GenerateCareerRoutines(ctx context.Context, pos PositionContext, stressLevel types.StressLevel) ([]string, error)
}

type contentGenerator struct {
	log    *logger.Logger
	client solar.Client
}

func NewContentGenerator(log *logger.Logger, client solar.Client) ContentGenerator {
	serviceLog := log.With("service", "ContentGenerator")
	return &contentGenerator{log: serviceLog, client: client}
}

var (
	keywordPattern     = regexp.MustCompile(`키워드:\s*(.+)`)
	descriptionPattern = regexp.MustCompile(`(?s)설명:\s*(.+)`)
	titlePattern       = regexp.MustCompile(`제목:\s*(.+)`)
	summaryPattern     = regexp.MustCompile(`(?s)요약:\s*(.+?)\n내용:`)
	contentPattern     = regexp.MustCompile(`(?s)내용:\s*(.+)`)
	routineLinePattern = regexp.MustCompile(`^[^\w\s]`)
)

func (cg *contentGenerator) buildPositionContext(pos PositionContext) string {
	ctx := fmt.Sprintf("%s 분야의 %s 직무", pos.CategoryName, pos.PositionName)
	if pos.PositionDescription != "" {
		ctx += "\n직무 설명: " + pos.PositionDescription
	}
	if pos.CategoryDescription != "" {
		ctx += "\n분야 설명: " + pos.CategoryDescription
	}
	return ctx
}

func (cg *contentGenerator) GenerateDailyKeyword(ctx context.Context, pos PositionContext) (*GeneratedKeyword, error) {
	positionInfo := cg.buildPositionContext(pos)

	messages := []solar.Message{
		{
			Role:    "system",
			Content: "당신은 취업 준비생을 돕는 전문 커리어 컨설턴트입니다. 최신 산업 트렌드와 채용 시장을 분석하여 도움이 되는 키워드를 제공합니다.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`다음 직무의 취업 준비생을 위한 오늘의 학습 키워드 1개를 추천해주세요.

%s

응답 형식:
키워드: [키워드명]
설명: [키워드에 대한 간단한 설명 (2-3문장)]

요구사항:
1. 현재 %s 분야의 %s 직무에서 중요한 기술, 개념, 트렌드를 반영
2. 면접이나 실무에서 자주 언급되는 주제
3. 하루 만에 기본 개념을 이해할 수 있는 수준의 키워드`, positionInfo, pos.CategoryName, pos.PositionName),
		},
	}

	response, err := cg.client.CreateChatCompletion(ctx, messages)
	if err != nil {
		cg.log.Error("Daily keyword generation failed", "position", pos.PositionName, "error", err)
		return nil, apierr.Upstream(err)
	}

	generated := &GeneratedKeyword{
		Keyword:     "기본 키워드",
		Description: strings.TrimSpace(response),
	}
	if m := keywordPattern.FindStringSubmatch(response); m != nil {
		generated.Keyword = strings.TrimSpace(m[1])
	}
	if m := descriptionPattern.FindStringSubmatch(response); m != nil {
		generated.Description = strings.TrimSpace(m[1])
	}
	return generated, nil
}

func (cg *contentGenerator) GenerateDailyReport(ctx context.Context, pos PositionContext) (*GeneratedReport, error) {
	positionInfo := cg.buildPositionContext(pos)

	messages := []solar.Message{
		{
			Role:    "system",
			Content: "당신은 산업 분석 전문가입니다. 최신 산업 뉴스와 트렌드를 분석하여 취업 준비생들에게 유용한 정보를 제공합니다.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`다음 직무를 준비하는 취업 준비생을 위한 오늘의 3분 산업 리포트를 작성해주세요.

%s

응답 형식:
제목: [리포트 제목]
요약: [3-4문장의 핵심 요약]
내용: [상세 리포트 내용]

요구사항:
1. %s 분야의 최신 트렌드, 기술 동향, 시장 변화를 반영
2. %s 직무에 특화된 정보 포함
3. 3분 안에 읽을 수 있는 분량 (500-800자)`, positionInfo, pos.CategoryName, pos.PositionName),
		},
	}

	response, err := cg.client.CreateChatCompletion(ctx, messages)
	if err != nil {
		cg.log.Error("Daily report generation failed", "position", pos.PositionName, "error", err)
		return nil, apierr.Upstream(err)
	}

	generated := &GeneratedReport{
		Title:   fmt.Sprintf("%s - %s 산업 리포트", pos.CategoryName, pos.PositionName),
		Summary: truncateRunes(strings.TrimSpace(response), 200),
		Content: strings.TrimSpace(response),
	}
	if m := titlePattern.FindStringSubmatch(response); m != nil {
		generated.Title = strings.TrimSpace(m[1])
	}
	if m := summaryPattern.FindStringSubmatch(response); m != nil {
		generated.Summary = strings.TrimSpace(m[1])
	}
	if m := contentPattern.FindStringSubmatch(response); m != nil {
		generated.Content = strings.TrimSpace(m[1])
	}
	return generated, nil
}

// stressGuides maps each stress band to the pacing guideline embedded in
// the routine prompt.
var stressGuides = map[types.StressLevel]string{
	types.StressExtremelyHigh: "매우 높은 스트레스 상태: 5분 이내로 완료 가능한 아주 가벼운 미션. 부담 없이 시작할 수 있는 것",
	types.StressHigh:          "높은 스트레스 상태: 10-15분 정도의 간단한 미션. 집중도가 낮아도 할 수 있는 것",
	types.StressMiddle:        "중간 스트레스 상태: 20-30분 정도의 적당한 난이도 미션. 가볍게 개념을 정리하거나 읽는 활동",
	types.StressLow:           "낮은 스트레스 상태: 30-60분 정도의 실습 미션. 집중해서 문제를 풀거나 코딩하는 활동",
	types.StressExtremelyLow:  "매우 낮은 스트레스 상태: 1-2시간 정도의 도전적인 미션. 복잡한 프로젝트나 심화 학습",
}

func (cg *contentGenerator) GenerateCareerRoutines(ctx context.Context, pos PositionContext, stressLevel types.StressLevel) ([]string, error) {
	positionInfo := cg.buildPositionContext(pos)

	messages := []solar.Message{
		{
			Role: "system",
			Content: `당신은 취업 준비생의 멘탈 케어와 커리어 성장을 함께 돕는 전문 코치입니다.
사용자의 현재 컨디션에 맞는 적절한 난이도의 학습/성장 미션을 제안합니다.`,
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`다음 정보를 바탕으로 오늘의 커리어 루틴을 6개 추천해주세요.

직무 정보:
%s

현재 상태:
- 스트레스 수준: %s
- 가이드라인: %s

응답 형식 (각 라인은 이모지로 시작):
✨ "첫 번째 루틴 추천 메시지"
📊 "두 번째 루틴 추천 메시지"
📚 "세 번째 루틴 추천 메시지"
📝 "네 번째 루틴 추천 메시지"
🌈 "다섯 번째 루틴 추천 메시지"
📌 "여섯 번째 루틴 추천 메시지"

요구사항:
1. 각 루틴은 반드시 이모지로 시작하고 큰따옴표로 감싸진 한 문장
2. %s 직무에 실제로 도움이 되는 구체적인 활동 제안
3. 스트레스 수준에 맞는 적절한 난이도와 소요 시간`, positionInfo, stressLevel, stressGuides[stressLevel], pos.PositionName),
		},
	}

	response, err := cg.client.CreateChatCompletion(ctx, messages)
	if err != nil {
		cg.log.Error("Routine generation failed", "position", pos.PositionName, "stressLevel", stressLevel, "error", err)
		return nil, apierr.Upstream(err)
	}

	routines := ParseRoutineLines(response)
	if len(routines) == 0 {
		routines = []string{fmt.Sprintf("✨ \"%s 직무 관련 학습을 시작해보세요!\"", pos.PositionName)}
	}
	return routines, nil
}

// ParseRoutineLines keeps only the reply lines that open with a
// non-word, non-space rune (the emoji bullets the prompt asks for).
func ParseRoutineLines(response string) []string {
	var routines []string
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if routineLinePattern.MatchString(trimmed) {
			routines = append(routines, trimmed)
		}
	}
	return routines
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
