package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

var (
	entitiesLimit  int
	entitiesOffset int
	entitiesJSON   bool
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Inspect synchronised entities",
	Long: `List or show the representatives and cases held in the local store.

Kinds: representatives, cases (singular forms are accepted).`,
}

var entitiesListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List entities of a kind",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntitiesList,
}

var entitiesGetCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Show one entity as JSON",
	Args:  cobra.ExactArgs(2),
	RunE:  runEntitiesGet,
}

func init() {
	entitiesListCmd.Flags().IntVarP(&entitiesLimit, "limit", "n", 20, "maximum number of entities")
	entitiesListCmd.Flags().IntVar(&entitiesOffset, "offset", 0, "number of entities to skip")
	entitiesListCmd.Flags().BoolVar(&entitiesJSON, "json", false, "output as JSON")

	entitiesCmd.AddCommand(entitiesListCmd)
	entitiesCmd.AddCommand(entitiesGetCmd)
	rootCmd.AddCommand(entitiesCmd)
}

func runEntitiesList(cmd *cobra.Command, args []string) error {
	if entityService == nil {
		return errors.New("entity service not configured")
	}

	kind, err := domain.ParseEntityKind(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	entities, err := entityService.List(ctx, kind, domain.ListOptions{Limit: entitiesLimit, Offset: entitiesOffset})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", kind, err)
	}

	if entitiesJSON {
		if entities == nil {
			entities = []domain.Entity{}
		}
		return outputJSON(cmd, entities)
	}

	total, err := entityService.Count(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", kind, err)
	}
	if total == 0 {
		cmd.Printf("No %s stored. Run 'tingsync sync' first.\n", kind)
		return nil
	}

	renderEntities(cmd.OutOrStdout(), NewStyles(cmd.OutOrStdout(), nil), kind, entities, total)
	return nil
}

func runEntitiesGet(cmd *cobra.Command, args []string) error {
	if entityService == nil {
		return errors.New("entity service not configured")
	}

	kind, err := domain.ParseEntityKind(args[0])
	if err != nil {
		return err
	}

	entity, err := entityService.Get(cmd.Context(), kind, args[1])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %s not found", kind, args[1])
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", kind, err)
	}

	return outputJSON(cmd, entity)
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
