package cli

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"
)

func newAliasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage the resource alias table",
	}
	cmd.AddCommand(newAliasListCmd())
	cmd.AddCommand(newAliasAddCmd())
	cmd.AddCommand(newAliasRmCmd())
	cmd.AddCommand(newAliasApplyCmd())
	return cmd
}

func newAliasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <resource-id>",
		Short: "List aliases of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doJSON(http.MethodGet, "/resources/"+args[0]+"/aliases", nil)
			if err != nil {
				return err
			}
			for _, a := range gjson.ParseBytes(body).Array() {
				cmd.Printf("%-12s %s\n", a.Get("kind").String(), a.Get("value").String())
			}
			return nil
		},
	}
}

type aliasManifestEntry struct {
	ResourceID int64  `json:"resourceId"`
	Kind       string `json:"kind"`
	Value      string `json:"value"`
}

func newAliasAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <resource-id> <kind> <value>",
		Short: "Add or update an alias mapping",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resourceID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource ID: %s", args[0])
			}
			_, err = doJSON(http.MethodPost, "/aliases", aliasManifestEntry{
				ResourceID: resourceID,
				Kind:       args[1],
				Value:      args[2],
			})
			if err != nil {
				return err
			}
			cmd.Println("alias saved")
			return nil
		},
	}
}

func newAliasRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <kind> <value>",
		Short: "Remove an alias mapping",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("kind", args[0])
			params.Set("value", args[1])
			_, err := doJSON(http.MethodDelete, "/aliases?"+params.Encode(), nil)
			if err != nil {
				return err
			}
			cmd.Println("alias removed")
			return nil
		},
	}
}

func newAliasApplyCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a YAML manifest of alias mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var entries []aliasManifestEntry
			if err := yaml.Unmarshal(content, &entries); err != nil {
				return fmt.Errorf("invalid manifest: %w", err)
			}
			for _, entry := range entries {
				if _, err := doJSON(http.MethodPost, "/aliases", entry); err != nil {
					return fmt.Errorf("alias %s/%s: %w", entry.Kind, entry.Value, err)
				}
			}
			cmd.Printf("applied %d aliases\n", len(entries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Manifest file")
	cmd.MarkFlagRequired("file")
	return cmd
}
