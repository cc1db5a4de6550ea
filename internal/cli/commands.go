package cli

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func pageQuery(limit int, nextToken string) url.Values {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if nextToken != "" {
		query.Set("nextToken", nextToken)
	}
	return query
}

func (r *runner) searchCommand() *cobra.Command {
	var page int
	var kind, year string
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Search the movie catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"search": {args[0]}}
			if page > 0 {
				query.Set("page", strconv.Itoa(page))
			}
			if kind != "" {
				query.Set("type", kind)
			}
			if year != "" {
				query.Set("year", year)
			}
			return r.do(cmd.Context(), http.MethodGet, "/providers/omdb", query, nil)
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 0, "Result page, starting at 1")
	cmd.Flags().StringVar(&kind, "type", "", "Restrict to movie, series or episode")
	cmd.Flags().StringVar(&year, "year", "", "Restrict to a release year")
	return cmd
}

func (r *runner) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <imdbId>",
		Short: "Show the full details of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/providers/omdb/"+url.PathEscape(args[0]), nil, nil)
		},
	}
}

func (r *runner) randomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Discover a random page of movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/providers/omdb/random", nil, nil)
		},
	}
}

func (r *runner) listsCommand() *cobra.Command {
	var limit int
	var nextToken string
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List the movie lists of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/lists", pageQuery(limit, nextToken), nil)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of lists to return")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "Token from a previous page")

	var public bool
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a movie list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodPost, "/lists", nil, map[string]interface{}{
				"name":     args[0],
				"isPublic": public,
			})
		},
	}
	create.Flags().BoolVar(&public, "public", false, "Make the list public")

	rename := &cobra.Command{
		Use:   "rename <listId> <name>",
		Short: "Rename a movie list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodPut, "/lists/"+url.PathEscape(args[0]), nil, map[string]interface{}{
				"name": args[1],
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <listId>",
		Short: "Show a movie list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/lists/"+url.PathEscape(args[0]), nil, nil)
		},
	}

	remove := &cobra.Command{
		Use:   "delete <listId>",
		Short: "Delete a movie list and every movie in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodDelete, "/lists/"+url.PathEscape(args[0]), nil, nil)
		},
	}
	cmd.AddCommand(create, rename, get, remove)
	return cmd
}

func (r *runner) moviesCommand() *cobra.Command {
	var limit int
	var nextToken string
	cmd := &cobra.Command{
		Use:   "movies <listId>",
		Short: "List the movies in a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/lists/"+url.PathEscape(args[0])+"/movies", pageQuery(limit, nextToken), nil)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of movies to return")
	cmd.Flags().StringVar(&nextToken, "next-token", "", "Token from a previous page")

	add := &cobra.Command{
		Use:   "add <listId> <imdbId>",
		Short: "Add a movie to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodPost, "/lists/"+url.PathEscape(args[0])+"/movies", nil, map[string]interface{}{
				"imdbId": args[1],
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <listId> <imdbId>",
		Short: "Remove a movie from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodDelete, "/lists/"+url.PathEscape(args[0])+"/movies/"+url.PathEscape(args[1]), nil, nil)
		},
	}
	cmd.AddCommand(add, remove)
	return cmd
}

func (r *runner) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/account", nil, nil)
		},
	}
	var displayName string
	register := &cobra.Command{
		Use:   "register",
		Short: "Register the account, creating its default list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodPost, "/account", nil, map[string]interface{}{
				"displayName": displayName,
			})
		},
	}
	register.Flags().StringVar(&displayName, "display-name", "", "Name shown for the account")
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count the lists and movies of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.do(cmd.Context(), http.MethodGet, "/account/stats", nil, nil)
		},
	}
	cmd.AddCommand(register, stats)
	return cmd
}
