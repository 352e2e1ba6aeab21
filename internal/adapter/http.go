package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/internal/utils"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/go-resty/resty/v2"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPAPIClient builds an [APIClient] for the server at cfg.HTTPAddress.
// A missing scheme defaults to http. cfg.Token, when set, is used for
// authenticated requests right away.
func NewHTTPAPIClient(cfg config.ClientAdapter, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &httpAPIClient{client: client, logger: logger}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	return h.token
}

// Register calls POST /users/create/.
func (h *httpAPIClient) Register(ctx context.Context, user models.User) (models.Profile, error) {
	var profile models.Profile

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(user).
		SetResult(&profile).
		Post("/users/create/")
	if err != nil {
		return models.Profile{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Profile{}, err
	}

	return profile, nil
}

// Login calls POST /users/token/ and keeps the returned token.
func (h *httpAPIClient) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&token).
		Post("/users/token/")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	if token.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}

	h.SetToken(token.Token)
	return token.Token, nil
}

func (h *httpAPIClient) GetProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if err := h.do(h.authedRequest(ctx).SetResult(&profile), http.MethodGet, "/users/profile/", "get profile"); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (h *httpAPIClient) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.Profile, error) {
	var profile models.Profile
	req := h.authedRequest(ctx).SetBody(update).SetResult(&profile)
	if err := h.do(req, http.MethodPatch, "/users/profile/", "update profile"); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// ListAttributes calls GET /recipes/{kind}/.
func (h *httpAPIClient) ListAttributes(ctx context.Context, kind models.AttributeKind, assignedOnly bool) ([]models.Attribute, error) {
	var attributes []models.Attribute

	req := h.authedRequest(ctx).SetResult(&attributes)
	if assignedOnly {
		req.SetQueryParam("assigned_only", "1")
	}
	if err := h.do(req, http.MethodGet, attributePath(kind), "list "+string(kind)+"s"); err != nil {
		return nil, err
	}

	return attributes, nil
}

func (h *httpAPIClient) CreateAttribute(ctx context.Context, kind models.AttributeKind, name string) (models.Attribute, error) {
	var attribute models.Attribute

	req := h.authedRequest(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&attribute)
	if err := h.do(req, http.MethodPost, attributePath(kind), "create "+string(kind)); err != nil {
		return models.Attribute{}, err
	}

	return attribute, nil
}

// ListRecipes calls GET /recipes/. filter.UserID is ignored; the server
// always lists the caller's recipes.
func (h *httpAPIClient) ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.RecipeSummary, error) {
	var recipes []models.RecipeSummary

	req := h.authedRequest(ctx).SetResult(&recipes)
	if len(filter.TagIDs) > 0 {
		req.SetQueryParam("tags", joinIDs(filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		req.SetQueryParam("ingredients", joinIDs(filter.IngredientIDs))
	}
	if err := h.do(req, http.MethodGet, "/recipes/", "list recipes"); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (h *httpAPIClient) GetRecipe(ctx context.Context, recipeID int64) (models.RecipeDetail, error) {
	var recipe models.RecipeDetail
	if err := h.do(h.authedRequest(ctx).SetResult(&recipe), http.MethodGet, recipePath(recipeID), "get recipe"); err != nil {
		return models.RecipeDetail{}, err
	}
	return recipe, nil
}

func (h *httpAPIClient) CreateRecipe(ctx context.Context, input models.RecipeInput) (models.RecipeDetail, error) {
	var recipe models.RecipeDetail
	req := h.authedRequest(ctx).SetBody(input).SetResult(&recipe)
	if err := h.do(req, http.MethodPost, "/recipes/", "create recipe"); err != nil {
		return models.RecipeDetail{}, err
	}
	return recipe, nil
}

// UpdateRecipe sends PUT for [models.FullUpdate] and PATCH otherwise.
func (h *httpAPIClient) UpdateRecipe(ctx context.Context, recipeID int64, input models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error) {
	method := http.MethodPatch
	if mode == models.FullUpdate {
		method = http.MethodPut
	}

	var recipe models.RecipeDetail
	req := h.authedRequest(ctx).SetBody(input).SetResult(&recipe)
	if err := h.do(req, method, recipePath(recipeID), "update recipe"); err != nil {
		return models.RecipeDetail{}, err
	}
	return recipe, nil
}

func (h *httpAPIClient) DeleteRecipe(ctx context.Context, recipeID int64) error {
	return h.do(h.authedRequest(ctx), http.MethodDelete, recipePath(recipeID), "delete recipe")
}

// UploadImage sends file as the multipart "image" field.
func (h *httpAPIClient) UploadImage(ctx context.Context, recipeID int64, file models.ImageFile) (models.RecipeImage, error) {
	var image models.RecipeImage

	req := h.authedRequest(ctx).
		SetFileReader("image", file.Name, bytes.NewReader(file.Data)).
		SetResult(&image)
	if err := h.do(req, http.MethodPost, recipePath(recipeID)+"upload-image/", "upload image"); err != nil {
		return models.RecipeImage{}, err
	}

	return image, nil
}

func (h *httpAPIClient) ServerVersion(ctx context.Context) (models.AppBuildInfo, error) {
	var info struct {
		Version string `json:"version"`
		Date    string `json:"date"`
		Commit  string `json:"commit"`
	}

	req := h.client.R().SetContext(ctx).SetResult(&info)
	if err := h.do(req, http.MethodGet, "/version/", "server version"); err != nil {
		return models.AppBuildInfo{}, err
	}

	return models.NewAppBuildInfo(info.Version, info.Date, info.Commit), nil
}

// do executes req and maps a non-2xx status to a sentinel error.
func (h *httpAPIClient) do(req *resty.Request, method, path, operation string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "*httpAPIClient.do").Str("path", path).Msg("request failed")
		return fmt.Errorf("%s request: %w", operation, err)
	}

	return mapHTTPError(resp)
}

func (h *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func attributePath(kind models.AttributeKind) string {
	return "/recipes/" + string(kind) + "/"
}

func recipePath(recipeID int64) string {
	return "/recipes/" + strconv.FormatInt(recipeID, 10) + "/"
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
