package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/samber/do"
	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/container"
	"github.com/serroba/shortipy/internal/shortener"
	"github.com/spf13/cobra"
)

// URLStore is what the urls commands need from the registry.
type URLStore interface {
	List(ctx context.Context) ([]shortener.URLMapping, error)
	Create(ctx context.Context, value string) (*shortener.URLMapping, error)
	Put(ctx context.Context, key shortener.Key, value string) (*shortener.URLMapping, error)
	Delete(ctx context.Context, key shortener.Key) error
}

// UserStore is what the users commands need from the credential store.
type UserStore interface {
	Create(ctx context.Context, username, password string) (*auth.Credential, error)
	Delete(ctx context.Context, username string) error
}

func addCommands(root *cobra.Command) {
	root.AddCommand(versionCommand(), configCommand(), urlsCommand(), usersCommand())
}

// withInjector runs f against a fresh injector and shuts it down afterwards.
// Any error ends the process with a non-zero status.
func withInjector(
	f func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error,
) func(*cobra.Command, []string) {
	return humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		err := f(cmd.Context(), cmd, injector)
		_ = injector.Shutdown()

		if err != nil {
			cmd.PrintErrln("Error:", err)
			os.Exit(1)
		}
	})
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *container.Options) {
			printConfig(cmd.OutOrStdout(), options)
		}),
	}
}

func urlsCommand() *cobra.Command {
	urls := &cobra.Command{
		Use:   "urls",
		Short: "Manage short URLs",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Store a URL under a generated key",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			value, _ := cmd.Flags().GetString("url")

			return newURL(ctx, cmd.OutOrStdout(), do.MustInvoke[*shortener.Registry](injector), value)
		}),
	}
	newCmd.Flags().StringP("url", "u", "", "URL to shorten")
	_ = newCmd.MarkFlagRequired("url")

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store a URL under an explicit key",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			key, _ := cmd.Flags().GetString("key")
			value, _ := cmd.Flags().GetString("url")

			return setURL(ctx, cmd.OutOrStdout(), do.MustInvoke[*shortener.Registry](injector), key, value)
		}),
	}
	setCmd.Flags().StringP("key", "k", "", "Six letter key")
	setCmd.Flags().StringP("url", "u", "", "Target URL")
	_ = setCmd.MarkFlagRequired("key")
	_ = setCmd.MarkFlagRequired("url")

	delCmd := &cobra.Command{
		Use:   "del",
		Short: "Delete a key",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			key, _ := cmd.Flags().GetString("key")

			return deleteURL(ctx, cmd.OutOrStdout(), do.MustInvoke[*shortener.Registry](injector), key)
		}),
	}
	delCmd.Flags().StringP("key", "k", "", "Key to delete")
	_ = delCmd.MarkFlagRequired("key")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored URL",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			return listURLs(ctx, cmd.OutOrStdout(), do.MustInvoke[*shortener.Registry](injector))
		}),
	}

	urls.AddCommand(newCmd, setCmd, delCmd, listCmd)

	return urls
}

func usersCommand() *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage API users",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a user",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			return newUser(ctx, cmd.OutOrStdout(), do.MustInvoke[*auth.CredentialStore](injector), username, password)
		}),
	}
	newCmd.Flags().StringP("username", "u", "", "Username")
	newCmd.Flags().StringP("password", "p", "", "Password")
	_ = newCmd.MarkFlagRequired("username")
	_ = newCmd.MarkFlagRequired("password")

	delCmd := &cobra.Command{
		Use:   "del",
		Short: "Delete a user",
		Run: withInjector(func(ctx context.Context, cmd *cobra.Command, injector *do.Injector) error {
			username, _ := cmd.Flags().GetString("username")

			return deleteUser(ctx, cmd.OutOrStdout(), do.MustInvoke[*auth.CredentialStore](injector), username)
		}),
	}
	delCmd.Flags().StringP("username", "u", "", "Username")
	_ = delCmd.MarkFlagRequired("username")

	users.AddCommand(newCmd, delCmd)

	return users
}

func printVersion(out io.Writer) {
	_, _ = fmt.Fprintf(out, "%s v%s\n", container.APITitle, container.APIVersion)
}

func printConfig(out io.Writer, options *container.Options) {
	for _, e := range options.Entries() {
		_, _ = fmt.Fprintf(out, "%s=%s\n", e.Name, e.Value)
	}
}

func newURL(ctx context.Context, out io.Writer, urls URLStore, value string) error {
	_, _ = fmt.Fprintf(out, "Insert url: %s...\n", value)

	mapping, err := urls.Create(ctx, value)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Key: %s\nDone.\n", mapping.Key)

	return nil
}

func setURL(ctx context.Context, out io.Writer, urls URLStore, key, value string) error {
	_, _ = fmt.Fprintf(out, "Set url %s: %s...\n", key, value)

	if _, err := urls.Put(ctx, shortener.Key(key), value); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Done.")

	return nil
}

func deleteURL(ctx context.Context, out io.Writer, urls URLStore, key string) error {
	_, _ = fmt.Fprintf(out, "Delete url: %s...\n", key)

	if err := urls.Delete(ctx, shortener.Key(key)); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Done.")

	return nil
}

func listURLs(ctx context.Context, out io.Writer, urls URLStore) error {
	mappings, err := urls.List(ctx)
	if err != nil {
		return err
	}

	for _, m := range mappings {
		_, _ = fmt.Fprintf(out, "%s %s\n", m.Key, m.Value)
	}

	return nil
}

func newUser(ctx context.Context, out io.Writer, users UserStore, username, password string) error {
	_, _ = fmt.Fprintf(out, "Insert user: %s...\n", username)

	if _, err := users.Create(ctx, username, password); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Done.")

	return nil
}

func deleteUser(ctx context.Context, out io.Writer, users UserStore, username string) error {
	_, _ = fmt.Fprintf(out, "Delete user: %s...\n", username)

	if err := users.Delete(ctx, username); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Done.")

	return nil
}
