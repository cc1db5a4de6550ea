package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"philcali.me/movies/internal/data"
	"philcali.me/movies/internal/routes"
	"philcali.me/movies/internal/server"
)

// RouterFactory builds the router commands are dispatched through.
type RouterFactory func(ctx context.Context) (*routes.Router, error)

type runner struct {
	factory RouterFactory
	user    string
	email   string
	out     io.Writer
}

// NewRootCommand creates the moviectl command tree. Every command is served
// by the same router as the HTTP API, acting as the --user account.
func NewRootCommand(factory RouterFactory, out io.Writer) *cobra.Command {
	r := &runner{factory: factory, out: out}
	root := &cobra.Command{
		Use:   "moviectl",
		Short: "Manage movie lists from the command line",
		Long: `moviectl talks to the movie lists table directly, using the same
validation as the HTTP API.

Examples:
  # Search the catalog
  moviectl search "the matrix" --year 1999

  # Create a list and add a movie to it
  moviectl lists create "Sci-Fi"
  moviectl movies add <listId> tt0133093`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&r.user, "user", "u", "local", "Account the commands act as")
	root.PersistentFlags().StringVar(&r.email, "email", "", "Email reported for the account")
	root.SetOut(out)

	root.AddCommand(
		r.searchCommand(),
		r.showCommand(),
		r.randomCommand(),
		r.listsCommand(),
		r.moviesCommand(),
		r.accountCommand(),
	)
	return root
}

func (r *runner) do(ctx context.Context, method string, path string, query url.Values, body interface{}) error {
	router, err := r.factory(ctx)
	if err != nil {
		return err
	}
	var payload io.Reader = http.NoBody
	if body != nil {
		content, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(content)
	}
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return err
	}
	event, err := server.ToEvent(req, server.Identity{
		Username: r.user,
		Email:    r.email,
		Scopes:   data.AllScopes(),
	})
	if err != nil {
		return err
	}
	response := router.Invoke(event, ctx)
	if response.StatusCode >= 400 {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(response.Body), &failure); err != nil || failure.Message == "" {
			failure.Message = response.Body
		}
		return fmt.Errorf("%d: %s", response.StatusCode, failure.Message)
	}
	if response.Body == "" {
		return nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(response.Body), "", "  "); err != nil {
		_, err = fmt.Fprintln(r.out, response.Body)
		return err
	}
	_, err = fmt.Fprintln(r.out, pretty.String())
	return err
}
