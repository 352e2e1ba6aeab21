package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-recipe-box/internal/adapter"
	"github.com/MKhiriev/go-recipe-box/internal/config"
	"github.com/MKhiriev/go-recipe-box/internal/logger"
	"github.com/MKhiriev/go-recipe-box/models"
	"github.com/spf13/cobra"
)

// clientFactory builds the API client once flags are applied.
type clientFactory func(cfg config.ClientAdapter, logger *logger.Logger) (adapter.APIClient, error)

type cli struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo
	newClient clientFactory
	logger    *logger.Logger

	api adapter.APIClient

	address string
	token   string
	timeout time.Duration
}

func newRootCmd(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, newClient clientFactory, log *logger.Logger) *cobra.Command {
	c := &cli{cfg: cfg, buildInfo: buildInfo, newClient: newClient, logger: log}

	root := &cobra.Command{
		Use:   "recipe-box",
		Short: "Command-line client of the recipe-box API",
		Long: `recipe-box talks to a recipe-box server on behalf of one user.

Get a token with "recipe-box login" and pass it with --token or the
RECIPES_TOKEN environment variable.`,
		Version:           buildInfo.BuildVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: c.connect,
	}

	root.PersistentFlags().StringVar(&c.address, "address", "", "Server base URL (overrides RECIPES_ADDRESS)")
	root.PersistentFlags().StringVar(&c.token, "token", "", "Auth token (overrides RECIPES_TOKEN)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "Request timeout (overrides RECIPES_REQUEST_TIMEOUT)")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.profileCmd(),
		c.attributeCmd(models.TagKind, "tags"),
		c.attributeCmd(models.IngredientKind, "ingredients"),
		c.recipesCmd(),
		c.versionCmd(),
	)

	return root
}

func (c *cli) connect(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("address") {
		c.cfg.Adapter.HTTPAddress = c.address
	}
	if flags.Changed("token") {
		c.cfg.Adapter.Token = c.token
	}
	if flags.Changed("timeout") {
		c.cfg.Adapter.RequestTimeout = c.timeout
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	api, err := c.newClient(c.cfg.Adapter, c.logger)
	if err != nil {
		return err
	}
	c.api = api

	return nil
}

// ---- users ----

func (c *cli) registerCmd() *cobra.Command {
	var user models.User

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.api.Register(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}

	cmd.Flags().StringVar(&user.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&user.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&user.Password, "password", "", "Password, at least 5 characters")

	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var credentials models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an auth token",
		Long: `Obtain an auth token and print it.

Example:
  export RECIPES_TOKEN=$(recipe-box login --email me@example.com --password secret)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := c.api.Login(cmd.Context(), credentials)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&credentials.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "Password")

	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := c.api.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}

	var email, name, password string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change email, name or password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var changes models.ProfileUpdate
			if cmd.Flags().Changed("email") {
				changes.Email = &email
			}
			if cmd.Flags().Changed("name") {
				changes.Name = &name
			}
			if cmd.Flags().Changed("password") {
				changes.Password = &password
			}

			profile, err := c.api.UpdateProfile(cmd.Context(), changes)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		},
	}
	update.Flags().StringVar(&email, "email", "", "New email")
	update.Flags().StringVar(&name, "name", "", "New display name")
	update.Flags().StringVar(&password, "password", "", "New password")

	cmd.AddCommand(update)
	return cmd
}

// ---- tags and ingredients ----

func (c *cli) attributeCmd(kind models.AttributeKind, use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Manage your " + use,
	}

	var assignedOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List your " + use,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			attributes, err := c.api.ListAttributes(cmd.Context(), kind, assignedOnly)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, a := range attributes {
				fmt.Fprintf(tw, "%d\t%s\n", a.ID, a.Name)
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&assignedOnly, "assigned-only", false, "Only those used by at least one recipe")

	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a " + string(kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attribute, err := c.api.CreateAttribute(cmd.Context(), kind, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), attribute)
		},
	}

	cmd.AddCommand(list, create)
	return cmd
}

// ---- recipes ----

func (c *cli) recipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage your recipes",
	}

	cmd.AddCommand(
		c.recipesListCmd(),
		c.recipesGetCmd(),
		c.recipesCreateCmd(),
		c.recipesUpdateCmd(),
		c.recipesDeleteCmd(),
		c.recipesUploadImageCmd(),
	)
	return cmd
}

func (c *cli) recipesListCmd() *cobra.Command {
	var tags, ingredients []int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long: `List recipes, optionally filtered by tag or ingredient ids.

Examples:
  recipe-box recipes list --tags 1,2
  recipe-box recipes list --ingredients 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipes, err := c.api.ListRecipes(cmd.Context(), models.RecipeFilter{TagIDs: tags, IngredientIDs: ingredients})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTIME\tPRICE\tTAGS\tINGREDIENTS")
			for _, r := range recipes {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Time, r.Price, joinIDs(r.Tags), joinIDs(r.Ingredients))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Int64SliceVar(&tags, "tags", nil, "Tag ids")
	cmd.Flags().Int64SliceVar(&ingredients, "ingredients", nil, "Ingredient ids")

	return cmd
}

func (c *cli) recipesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}

			recipe, err := c.api.GetRecipe(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recipe)
		},
	}
}

func (c *cli) recipesCreateCmd() *cobra.Command {
	flags := &recipeFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe",
		Long: `Create a recipe.

Example:
  recipe-box recipes create --name "Pancakes" --time 20 --price 4.50 --tags 1,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := flags.input(cmd)
			if err != nil {
				return err
			}

			recipe, err := c.api.CreateRecipe(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recipe)
		},
	}
	flags.register(cmd)

	return cmd
}

func (c *cli) recipesUpdateCmd() *cobra.Command {
	flags := &recipeFlags{}
	var full bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a recipe",
		Long: `Update a recipe. Only the given flags are changed unless --full is set,
in which case name, time and price are required and omitted link, tags and
ingredients are cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}

			input, err := flags.input(cmd)
			if err != nil {
				return err
			}

			mode := models.PartialUpdate
			if full {
				mode = models.FullUpdate
			}

			recipe, err := c.api.UpdateRecipe(cmd.Context(), id, input, mode)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recipe)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&full, "full", false, "Replace the whole recipe")

	return cmd
}

func (c *cli) recipesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}

			if err = c.api.DeleteRecipe(cmd.Context(), id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recipe %d deleted\n", id)
			return err
		},
	}
}

func (c *cli) recipesUploadImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image ID FILE",
		Short: "Attach an image to a recipe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			image, err := c.api.UploadImage(cmd.Context(), id, models.ImageFile{Name: filepath.Base(args[1]), Data: data})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), image)
		},
	}
}

// recipeFlags maps command flags onto [models.RecipeInput]. Flags the user
// did not pass stay nil.
type recipeFlags struct {
	name        string
	time        int
	price       string
	link        string
	tags        []int64
	ingredients []int64
}

func (f *recipeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Recipe name")
	cmd.Flags().IntVar(&f.time, "time", 0, "Preparation time in minutes")
	cmd.Flags().StringVar(&f.price, "price", "", "Price, e.g. 4.50")
	cmd.Flags().StringVar(&f.link, "link", "", "Source link")
	cmd.Flags().Int64SliceVar(&f.tags, "tags", nil, "Tag ids")
	cmd.Flags().Int64SliceVar(&f.ingredients, "ingredients", nil, "Ingredient ids")
}

func (f *recipeFlags) input(cmd *cobra.Command) (models.RecipeInput, error) {
	var input models.RecipeInput
	changed := cmd.Flags().Changed

	if changed("name") {
		input.Name = &f.name
	}
	if changed("time") {
		input.Time = &f.time
	}
	if changed("price") {
		price, err := models.ParsePrice(f.price)
		if err != nil {
			return models.RecipeInput{}, fmt.Errorf("--price: %w", err)
		}
		input.Price = &price
	}
	if changed("link") {
		input.Link = &f.link
	}
	if changed("tags") {
		input.Tags = &f.tags
	}
	if changed("ingredients") {
		input.Ingredients = &f.ingredients
	}

	return input, nil
}

// ---- version ----

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show client and server build info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			printBuildInfo(out, "Client", c.buildInfo)

			server, err := c.api.ServerVersion(cmd.Context())
			if err != nil {
				c.logger.Warn().Err(err).Str("func", "*cli.versionCmd").Msg("server version is unavailable")
				return nil
			}
			printBuildInfo(out, "Server", server)
			return nil
		},
	}
}

func printBuildInfo(w io.Writer, who string, info models.AppBuildInfo) {
	fmt.Fprintf(w, "%s build version: %s\n", who, info.BuildVersion())
	fmt.Fprintf(w, "%s build date: %s\n", who, info.BuildDate())
	fmt.Fprintf(w, "%s build commit: %s\n", who, info.BuildCommit())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseRecipeID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid recipe id %q", raw)
	}
	return id, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
