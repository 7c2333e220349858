package cmd

import (
	"fmt"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"starter.GO/api"
	_ "starter.GO/api/graphql"
	_ "starter.GO/api/health"
	_ "starter.GO/api/user"
)

var routesCmd = &cobra.Command{
	Use:   "routes:list",
	Short: "Print every registered route",
	Run: func(cmd *cobra.Command, args []string) {
		// Registration only touches the DB at request time, so nil is fine here.
		e := echo.New()
		api.ApplyRoutes(e, nil)
		api.ApplyModules(e.Group("/api/v1"), nil)

		routes := e.Routes()
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path == routes[j].Path {
				return routes[i].Method < routes[j].Method
			}
			return routes[i].Path < routes[j].Path
		})
		for _, r := range routes {
			fmt.Printf("%-7s %s\n", r.Method, r.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
