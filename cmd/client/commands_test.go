package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/adapter"
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements only what a test sets; calling anything else panics on
// the nil embedded interface.
type fakeAPI struct {
	adapter.APIClient

	LoginFn          func(ctx context.Context, c models.Credentials) (string, error)
	UpdateProfileFn  func(ctx context.Context, u models.ProfileUpdate) (models.Profile, error)
	ListAttributesFn func(ctx context.Context, kind models.AttributeKind, assignedOnly bool) ([]models.Attribute, error)
	ListRecipesFn    func(ctx context.Context, f models.RecipeFilter) ([]models.RecipeSummary, error)
	CreateRecipeFn   func(ctx context.Context, in models.RecipeInput) (models.RecipeDetail, error)
	UpdateRecipeFn   func(ctx context.Context, id int64, in models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error)
	DeleteRecipeFn   func(ctx context.Context, id int64) error
	UploadImageFn    func(ctx context.Context, id int64, f models.ImageFile) (models.RecipeImage, error)
	ServerVersionFn  func(ctx context.Context) (models.AppBuildInfo, error)
}

func (f *fakeAPI) Login(ctx context.Context, c models.Credentials) (string, error) {
	return f.LoginFn(ctx, c)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, u models.ProfileUpdate) (models.Profile, error) {
	return f.UpdateProfileFn(ctx, u)
}

func (f *fakeAPI) ListAttributes(ctx context.Context, kind models.AttributeKind, assignedOnly bool) ([]models.Attribute, error) {
	return f.ListAttributesFn(ctx, kind, assignedOnly)
}

func (f *fakeAPI) ListRecipes(ctx context.Context, filter models.RecipeFilter) ([]models.RecipeSummary, error) {
	return f.ListRecipesFn(ctx, filter)
}

func (f *fakeAPI) CreateRecipe(ctx context.Context, in models.RecipeInput) (models.RecipeDetail, error) {
	return f.CreateRecipeFn(ctx, in)
}

func (f *fakeAPI) UpdateRecipe(ctx context.Context, id int64, in models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error) {
	return f.UpdateRecipeFn(ctx, id, in, mode)
}

func (f *fakeAPI) DeleteRecipe(ctx context.Context, id int64) error {
	return f.DeleteRecipeFn(ctx, id)
}

func (f *fakeAPI) UploadImage(ctx context.Context, id int64, file models.ImageFile) (models.RecipeImage, error) {
	return f.UploadImageFn(ctx, id, file)
}

func (f *fakeAPI) ServerVersion(ctx context.Context) (models.AppBuildInfo, error) {
	return f.ServerVersionFn(ctx)
}

func defaultClientConfig() *config.ClientConfig {
	return &config.ClientConfig{Adapter: config.ClientAdapter{
		HTTPAddress:    "http://localhost:8080",
		RequestTimeout: 30 * time.Second,
	}}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, cfg *config.ClientConfig, api *fakeAPI, args ...string) (string, error) {
	t.Helper()

	factory := func(config.ClientAdapter, *logger.Logger) (adapter.APIClient, error) {
		return api, nil
	}
	root := newRootCmd(cfg, models.NewAppBuildInfo("v1.0.0", "", ""), factory, logger.Nop())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// ---- global flags ----

func TestConnect_FlagsOverrideConfig(t *testing.T) {
	cfg := defaultClientConfig()
	cfg.Adapter.Token = "from-env"

	var got config.ClientAdapter
	factory := func(c config.ClientAdapter, _ *logger.Logger) (adapter.APIClient, error) {
		got = c
		return &fakeAPI{ListAttributesFn: func(context.Context, models.AttributeKind, bool) ([]models.Attribute, error) {
			return nil, nil
		}}, nil
	}

	root := newRootCmd(cfg, models.NewAppBuildInfo("", "", ""), factory, logger.Nop())
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--address", "http://api:9000", "--token", "from-flag", "--timeout", "5s", "tags", "list"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "http://api:9000", got.HTTPAddress)
	assert.Equal(t, "from-flag", got.Token)
	assert.Equal(t, 5*time.Second, got.RequestTimeout)
}

func TestConnect_InvalidConfig(t *testing.T) {
	cfg := defaultClientConfig()
	cfg.Adapter.RequestTimeout = 0

	_, err := runCLI(t, cfg, &fakeAPI{}, "profile")

	assert.ErrorIs(t, err, config.ErrInvalidAdapterConfigs)
}

func TestConnect_FactoryError(t *testing.T) {
	factory := func(config.ClientAdapter, *logger.Logger) (adapter.APIClient, error) {
		return nil, adapter.ErrInvalidAddress
	}
	root := newRootCmd(defaultClientConfig(), models.NewAppBuildInfo("", "", ""), factory, logger.Nop())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"profile"})

	assert.ErrorIs(t, root.Execute(), adapter.ErrInvalidAddress)
}

// ---- users ----

func TestLoginCmd_PrintsToken(t *testing.T) {
	api := &fakeAPI{LoginFn: func(_ context.Context, c models.Credentials) (string, error) {
		assert.Equal(t, models.Credentials{Email: "me@example.com", Password: "secret"}, c)
		return "tok-1", nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "login", "--email", "me@example.com", "--password", "secret")

	require.NoError(t, err)
	assert.Equal(t, "tok-1\n", out)
}

func TestProfileUpdateCmd_OnlyChangedFields(t *testing.T) {
	api := &fakeAPI{UpdateProfileFn: func(_ context.Context, u models.ProfileUpdate) (models.Profile, error) {
		assert.Nil(t, u.Email)
		assert.Nil(t, u.Password)
		require.NotNil(t, u.Name)
		assert.Equal(t, "", *u.Name)
		return models.Profile{Email: "me@example.com"}, nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "profile", "update", "--name", "")

	require.NoError(t, err)
	assert.Contains(t, out, `"email": "me@example.com"`)
}

// ---- attributes ----

func TestIngredientsListCmd(t *testing.T) {
	api := &fakeAPI{ListAttributesFn: func(_ context.Context, kind models.AttributeKind, assignedOnly bool) ([]models.Attribute, error) {
		assert.Equal(t, models.IngredientKind, kind)
		assert.True(t, assignedOnly)
		return []models.Attribute{{ID: 4, Name: "Flour"}}, nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "ingredients", "list", "--assigned-only")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "4   Flour")
}

// ---- recipes ----

func TestRecipesListCmd_Filter(t *testing.T) {
	api := &fakeAPI{ListRecipesFn: func(_ context.Context, f models.RecipeFilter) ([]models.RecipeSummary, error) {
		assert.Equal(t, []int64{1, 2}, f.TagIDs)
		assert.Empty(t, f.IngredientIDs)
		return []models.RecipeSummary{{ID: 3, Name: "Soup", Time: 15, Price: 450, Tags: []int64{1, 2}}}, nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "recipes", "list", "--tags", "1,2")

	require.NoError(t, err)
	assert.Contains(t, out, "Soup")
	assert.Contains(t, out, "4.50")
	assert.Contains(t, out, "1,2")
}

func TestRecipesCreateCmd_BuildsInput(t *testing.T) {
	api := &fakeAPI{CreateRecipeFn: func(_ context.Context, in models.RecipeInput) (models.RecipeDetail, error) {
		require.NotNil(t, in.Name)
		require.NotNil(t, in.Price)
		require.NotNil(t, in.Tags)
		assert.Equal(t, "Pancakes", *in.Name)
		assert.Equal(t, models.Price(450), *in.Price)
		assert.Equal(t, []int64{1}, *in.Tags)
		assert.Nil(t, in.Time)
		assert.Nil(t, in.Link)
		assert.Nil(t, in.Ingredients)
		return models.RecipeDetail{ID: 10, Name: "Pancakes"}, nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "recipes", "create", "--name", "Pancakes", "--price", "4.50", "--tags", "1")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": 10`)
}

func TestRecipesCreateCmd_InvalidPrice(t *testing.T) {
	_, err := runCLI(t, defaultClientConfig(), &fakeAPI{}, "recipes", "create", "--name", "X", "--price", "abc")

	assert.ErrorIs(t, err, models.ErrInvalidPrice)
}

func TestRecipesUpdateCmd_Mode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want models.UpdateMode
	}{
		{name: "partial by default", args: []string{"recipes", "update", "7", "--time", "5"}, want: models.PartialUpdate},
		{name: "full", args: []string{"recipes", "update", "7", "--full", "--time", "5"}, want: models.FullUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{UpdateRecipeFn: func(_ context.Context, id int64, in models.RecipeInput, mode models.UpdateMode) (models.RecipeDetail, error) {
				assert.Equal(t, int64(7), id)
				assert.Equal(t, tt.want, mode)
				require.NotNil(t, in.Time)
				assert.Equal(t, 5, *in.Time)
				return models.RecipeDetail{ID: 7}, nil
			}}

			_, err := runCLI(t, defaultClientConfig(), api, tt.args...)
			require.NoError(t, err)
		})
	}
}

func TestRecipesDeleteCmd(t *testing.T) {
	api := &fakeAPI{DeleteRecipeFn: func(_ context.Context, id int64) error {
		assert.Equal(t, int64(3), id)
		return nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "recipes", "delete", "3")

	require.NoError(t, err)
	assert.Equal(t, "recipe 3 deleted\n", out)
}

func TestRecipesDeleteCmd_InvalidID(t *testing.T) {
	_, err := runCLI(t, defaultClientConfig(), &fakeAPI{}, "recipes", "delete", "abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid recipe id "abc"`)
}

func TestRecipesDeleteCmd_NotFound(t *testing.T) {
	api := &fakeAPI{DeleteRecipeFn: func(context.Context, int64) error {
		return adapter.ErrNotFound
	}}

	_, err := runCLI(t, defaultClientConfig(), api, "recipes", "delete", "3")

	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

func TestRecipesUploadImageCmd_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dish.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	api := &fakeAPI{UploadImageFn: func(_ context.Context, id int64, f models.ImageFile) (models.RecipeImage, error) {
		assert.Equal(t, int64(2), id)
		assert.Equal(t, "dish.jpg", f.Name)
		assert.Equal(t, []byte("jpeg-bytes"), f.Data)
		return models.RecipeImage{ID: 2, Image: "http://localhost/media/uploads/recipes/x.jpg"}, nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "recipes", "upload-image", "2", path)

	require.NoError(t, err)
	assert.Contains(t, out, "uploads/recipes/x.jpg")
}

func TestRecipesUploadImageCmd_MissingFile(t *testing.T) {
	_, err := runCLI(t, defaultClientConfig(), &fakeAPI{}, "recipes", "upload-image", "2", filepath.Join(t.TempDir(), "nope.png"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

// ---- version ----

func TestVersionCmd(t *testing.T) {
	api := &fakeAPI{ServerVersionFn: func(context.Context) (models.AppBuildInfo, error) {
		return models.NewAppBuildInfo("v2.0.0", "2026-02-01", "deadbeef"), nil
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Client build version: v1.0.0")
	assert.Contains(t, out, "Client build date: N/A")
	assert.Contains(t, out, "Server build commit: deadbeef")
}

func TestVersionCmd_ServerUnavailable(t *testing.T) {
	api := &fakeAPI{ServerVersionFn: func(context.Context) (models.AppBuildInfo, error) {
		return models.AppBuildInfo{}, errors.New("connection refused")
	}}

	out, err := runCLI(t, defaultClientConfig(), api, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "Client build version: v1.0.0")
	assert.NotContains(t, out, "Server")
}
