package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jobdam/jobdam-backend/internal/types"
)

func TestGenerateDailyKeyword_ParsesLabels(t *testing.T) {
	client := &fakeSolarClient{response: "키워드: GraphQL\n설명: API 질의 언어입니다. 과다수신 문제를 줄입니다."}
	gen := NewContentGenerator(newTestLogger(), client)

	got, err := gen.GenerateDailyKeyword(context.Background(), PositionContext{
		PositionName: "백엔드 개발자",
		CategoryName: "개발",
	})
	if err != nil {
		t.Fatalf("GenerateDailyKeyword failed: %v", err)
	}
	if got.Keyword != "GraphQL" {
		t.Fatalf("keyword = %q, want %q", got.Keyword, "GraphQL")
	}
	if !strings.HasPrefix(got.Description, "API 질의 언어입니다.") {
		t.Fatalf("description = %q", got.Description)
	}
}

func TestGenerateDailyKeyword_FallsBackWhenUnlabeled(t *testing.T) {
	client := &fakeSolarClient{response: "오늘은 캐싱 전략을 공부해보세요."}
	gen := NewContentGenerator(newTestLogger(), client)

	got, err := gen.GenerateDailyKeyword(context.Background(), PositionContext{
		PositionName: "백엔드 개발자",
		CategoryName: "개발",
	})
	if err != nil {
		t.Fatalf("GenerateDailyKeyword failed: %v", err)
	}
	if got.Keyword != "기본 키워드" {
		t.Fatalf("keyword = %q, want fallback", got.Keyword)
	}
	if got.Description != "오늘은 캐싱 전략을 공부해보세요." {
		t.Fatalf("description = %q, want full reply", got.Description)
	}
}

func TestGenerateDailyReport_ParsesLabels(t *testing.T) {
	client := &fakeSolarClient{response: "제목: 백엔드 채용 동향\n요약: 채용이 늘고 있습니다.\n내용: 올해 들어 백엔드 채용 공고가 증가했습니다."}
	gen := NewContentGenerator(newTestLogger(), client)

	got, err := gen.GenerateDailyReport(context.Background(), PositionContext{
		PositionName: "백엔드 개발자",
		CategoryName: "개발",
	})
	if err != nil {
		t.Fatalf("GenerateDailyReport failed: %v", err)
	}
	if got.Title != "백엔드 채용 동향" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Summary != "채용이 늘고 있습니다." {
		t.Fatalf("summary = %q", got.Summary)
	}
	if got.Content != "올해 들어 백엔드 채용 공고가 증가했습니다." {
		t.Fatalf("content = %q", got.Content)
	}
}

func TestGenerateDailyReport_FallbackTitleAndSummary(t *testing.T) {
	long := strings.Repeat("가", 300)
	client := &fakeSolarClient{response: long}
	gen := NewContentGenerator(newTestLogger(), client)

	got, err := gen.GenerateDailyReport(context.Background(), PositionContext{
		PositionName: "백엔드 개발자",
		CategoryName: "개발",
	})
	if err != nil {
		t.Fatalf("GenerateDailyReport failed: %v", err)
	}
	if got.Title != "개발 - 백엔드 개발자 산업 리포트" {
		t.Fatalf("title = %q, want fallback", got.Title)
	}
	if runes := []rune(got.Summary); len(runes) != 200 {
		t.Fatalf("summary length = %d runes, want 200", len(runes))
	}
	if got.Content != long {
		t.Fatalf("content should keep the full reply")
	}
}

func TestParseRoutineLines(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			name:     "keeps emoji bullets",
			response: "🧘 \"명상으로 하루를 시작하세요\"\n\n📚 \"공식 문서를 읽어보세요\"",
			want:     []string{"🧘 \"명상으로 하루를 시작하세요\"", "📚 \"공식 문서를 읽어보세요\""},
		},
		{
			name:     "drops lines starting with ascii words",
			response: "Here are your routines:\n✨ \"가볍게 복습하세요\"\n1. numbered item",
			want:     []string{"✨ \"가볍게 복습하세요\""},
		},
		{
			name:     "keeps korean-led lines",
			response: "다음은 추천 루틴입니다:\n✨ \"가볍게 복습하세요\"",
			want:     []string{"다음은 추천 루틴입니다:", "✨ \"가볍게 복습하세요\""},
		},
		{
			name:     "empty reply yields nothing",
			response: "\n\n",
			want:     nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRoutineLines(tc.response)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d lines %v, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("line %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestGenerateCareerRoutines_GuaranteesOne(t *testing.T) {
	client := &fakeSolarClient{response: "Sorry, no recommendations available."}
	gen := NewContentGenerator(newTestLogger(), client)

	routines, err := gen.GenerateCareerRoutines(context.Background(), PositionContext{
		PositionName: "백엔드 개발자",
		CategoryName: "개발",
	}, types.StressMiddle)
	if err != nil {
		t.Fatalf("GenerateCareerRoutines failed: %v", err)
	}
	if len(routines) != 1 {
		t.Fatalf("routines = %v, want the single fallback", routines)
	}
	if !strings.Contains(routines[0], "백엔드 개발자") {
		t.Fatalf("fallback routine should mention the position: %q", routines[0])
	}
}
