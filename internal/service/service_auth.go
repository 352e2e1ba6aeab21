package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/store"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/internal/validators"
	"github.com/MKhiriev/go-recipe-box/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; tokens are signed JWTs of which
// only an HMAC-SHA256 digest of each issued token is persisted.
type authService struct {
	userRepository  store.UserRepository
	tokenRepository store.TokenRepository
	validator       validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero means tokens never expire.
	tokenDuration time.Duration

	// tokenHashKey keys the digests kept in the token repository.
	tokenHashKey string

	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService with security parameters from
// cfg. When no dedicated token hash key is configured the sign key is used.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokenRepository store.TokenRepository, cfg config.App, logger *logger.Logger) AuthService {
	hashKey := cfg.TokenHashKey
	if hashKey == "" {
		hashKey = cfg.TokenSignKey
	}

	return &authService{
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		validator:       validators.NewUserValidator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		tokenHashKey:    hashKey,
		now:             time.Now,
		logger:          logger,
	}
}

// RegisterUser creates an active account.
//
// The email is normalized before validation and storage. Returns the stored
// user without the password, a *validators.ValidationError for bad input, or
// a conflict error on the email field when the address is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.Email = validators.NormalizeEmail(user.Email)
	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("func", "*authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.Password = ""
	user.IsActive = true

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, validators.Conflict(validators.FieldEmail, validators.MsgEmailTaken)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates credentials and issues a fresh token.
//
// Unknown email, inactive account and wrong password all yield
// [ErrAuthenticationFailed], so callers cannot tell which emails are registered.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.Token{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, validators.NormalizeEmail(credentials.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Debug().Str("func", "*authService.Login").Msg("unknown email")
		return models.Token{}, ErrAuthenticationFailed
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !foundUser.IsActive {
		log.Debug().Str("func", "*authService.Login").Int64("user_id", foundUser.UserID).Msg("inactive user")
		return models.Token{}, ErrAuthenticationFailed
	}

	if err = utils.CheckPassword(foundUser.PasswordHash, credentials.Password); err != nil {
		log.Debug().Str("func", "*authService.Login").Int64("user_id", foundUser.UserID).Msg("wrong password")
		return models.Token{}, ErrAuthenticationFailed
	}

	return a.createToken(ctx, foundUser)
}

// ParseToken verifies signature, issuer and expiry of key, then checks that
// key was issued by Login to a user who is still active.
func (a *authService) ParseToken(ctx context.Context, key string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(key, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token validation failed")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	stored, err := a.tokenRepository.FindTokenByDigest(ctx, utils.HashString(key, a.tokenHashKey))
	if errors.Is(err, store.ErrTokenNotFound) {
		log.Debug().Str("func", "*authService.ParseToken").Int64("user_id", token.UserID).Msg("token is not issued by this server")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ParseToken").Msg("error loading issued token")
		return models.Token{}, fmt.Errorf("error loading issued token: %w", err)
	}

	if stored.UserID != token.UserID {
		log.Debug().Str("func", "*authService.ParseToken").Int64("user_id", token.UserID).Msg("token owner mismatch")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) || (err == nil && !user.IsActive) {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ParseToken").Msg("error loading token owner")
		return models.Token{}, fmt.Errorf("error loading token owner: %w", err)
	}

	return token, nil
}

// GetProfile returns the public profile of the caller.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	user, err := a.findUser(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	return user.Profile(), nil
}

// UpdateProfile applies the supplied fields of update to the caller. A new
// password is re-hashed; a new email is normalized and must be unique.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if update.Email != nil {
		email := validators.NormalizeEmail(*update.Email)
		update.Email = &email
	}
	if err := a.validator.Validate(ctx, update); err != nil {
		return models.Profile{}, err
	}

	user, err := a.findUser(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		user.PasswordHash, err = utils.HashPassword(*update.Password)
		if err != nil {
			log.Err(err).Str("func", "*authService.UpdateProfile").Msg("error hashing password")
			return models.Profile{}, fmt.Errorf("error hashing password: %w", err)
		}
	}

	updated, err := a.userRepository.UpdateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.Profile{}, validators.Conflict(validators.FieldEmail, validators.MsgEmailTaken)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.UpdateProfile").Int64("user_id", userID).Msg("error updating user")
		return models.Profile{}, fmt.Errorf("error updating user: %w", err)
	}

	return updated.Profile(), nil
}

// createToken signs a token for user and stores its digest. Tokens issued
// earlier stay valid.
func (a *authService) createToken(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.createToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	stored := models.StoredToken{
		UserID:    user.UserID,
		KeyDigest: utils.HashString(token.Key, a.tokenHashKey),
		CreatedAt: a.now(),
	}
	if err = a.tokenRepository.SaveToken(ctx, stored); err != nil {
		log.Err(err).Str("func", "*authService.createToken").Int64("user_id", user.UserID).Msg("error saving token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// findUser loads the caller. A caller that no longer exists is treated as
// unauthenticated.
func (a *authService) findUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.findUser").Int64("user_id", userID).Msg("error loading user")
		return models.User{}, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}
