package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/requestdata"
	"github.com/jobdam/jobdam-backend/internal/types"
	"github.com/jobdam/jobdam-backend/internal/utils"
)

const jwtIssuer = "jobdam"

type JWTClaims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, name, password string) (*TokenPair, error)
	ReissueTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	LogoutUser(ctx context.Context, userID uint) error
	GetProfile(ctx context.Context, userID uint) (*types.User, error)
	UpdateInterests(ctx context.Context, userID uint, interests string) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
	GetRefreshTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(user)
	if vErr := utils.ValidateRegistration(user); vErr != nil {
		return vErr
	}

	exists, err := as.userRepo.NameExists(ctx, nil, user.Name)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("failed to check user name: %w", err))
	}
	if exists {
		return apierr.Conflict("name %q is already taken", user.Name)
	}

	if hErr := utils.HashPassword(user); hErr != nil {
		return hErr
	}

	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		// A concurrent registration can slip past the pre-check; the
		// unique index turns it into the same conflict.
		if isUniqueViolation(err) {
			return apierr.Conflict("name %q is already taken", user.Name)
		}
		return apierr.Upstream(fmt.Errorf("failed to create user: %w", err))
	}

	as.log.Info("User registered", "userID", user.ID, "name", user.Name)
	return nil
}

func (as *authService) LoginUser(ctx context.Context, name, password string) (*TokenPair, error) {
	name = strings.TrimSpace(name)
	if vErr := utils.ValidateLogin(name, password); vErr != nil {
		return nil, vErr
	}

	user, err := as.userRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to look up user: %w", err))
	}
	if user == nil {
		return nil, apierr.NotFound("user name is not registered")
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, apierr.Forbidden("wrong password")
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := as.userRepo.UpdateLastLogin(ctx, tx, user.ID, now); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		issued, genErr := as.issueTokenPair(ctx, tx, user)
		if genErr != nil {
			return genErr
		}
		pair = issued
		return nil
	})
	if err != nil {
		as.log.Warn("Login transaction failed", "name", name, "error", err)
		return nil, apierr.Upstream(err)
	}
	return pair, nil
}

// ReissueTokens trades a valid refresh token for a fresh pair. The token
// must both verify and match the stored pair for its user.
func (as *authService) ReissueTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := as.parseToken(refreshToken)
	if err != nil {
		return nil, apierr.Unauthorized("invalid refresh token")
	}

	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to look up refresh token: %w", err))
	}
	if stored == nil || stored.UserID != claims.UserID {
		return nil, apierr.Unauthorized("refresh token is not active")
	}

	user, err := as.userRepo.GetByID(ctx, nil, claims.UserID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load user for reissue: %w", err))
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}

	var pair *TokenPair
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issued, genErr := as.issueTokenPair(ctx, tx, user)
		if genErr != nil {
			return genErr
		}
		pair = issued
		return nil
	})
	if err != nil {
		return nil, apierr.Upstream(err)
	}
	return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context, userID uint) error {
	deleted, err := as.userTokenRepo.DeleteByUserID(ctx, nil, userID)
	if err != nil {
		return apierr.Upstream(fmt.Errorf("failed to delete user token: %w", err))
	}
	if deleted == 0 {
		return apierr.NotFound("no active session for user")
	}
	return nil
}

func (as *authService) GetProfile(ctx context.Context, userID uint) (*types.User, error) {
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load user: %w", err))
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}
	return user, nil
}

func (as *authService) UpdateInterests(ctx context.Context, userID uint, interests string) (*types.User, error) {
	if err := as.userRepo.UpdateInterests(ctx, nil, userID, strings.TrimSpace(interests)); err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to update interests: %w", err))
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load user: %w", err))
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}
	return user, nil
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	accessToken, err := as.signToken(user, as.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := as.signToken(user, as.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	userToken := types.UserToken{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if _, err := as.userTokenRepo.Upsert(ctx, tx, &userToken); err != nil {
		return nil, fmt.Errorf("failed to store token pair: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) signToken(user *types.User, ttl time.Duration) (string, error) {
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti keeps rotated tokens distinct even when two
			// signings land on the same second.
			ID:        uuid.NewString(),
			Issuer:    jwtIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) parseToken(tokenString string) (*JWTClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithIssuer(jwtIssuer))
	if err != nil {
		return nil, err
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}
	return claims, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, err := as.parseToken(tokenString)
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      claims.UserID,
		Username:    claims.Username,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) GetRefreshTTL() time.Duration {
	return as.refreshTTL
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
