package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdkb/internal/service"
)

func newWatchCmd(a *app) *cobra.Command {
	var importExisting bool

	watchCmd := &cobra.Command{
		Use:   "watch [kb-id] [dir]",
		Short: "Import new markdown files as they appear",
		Long: `Watches a directory tree and imports every newly created file that matches
the configured watch patterns. Runs until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			ctx := cmd.Context()
			kbID, dir := args[0], args[1]

			_, found, err := env.Service.GetKnowledgeBase(ctx, kbID)
			if err != nil {
				return fmt.Errorf("failed to get knowledge base: %w", err)
			}
			if !found {
				return fmt.Errorf("knowledge base %s: %w", kbID, service.ErrNotFound)
			}

			manager, err := newManager(env)
			if err != nil {
				return err
			}

			if importExisting {
				result, err := manager.ImportPaths(ctx, kbID, []string{dir})
				if err != nil {
					return fmt.Errorf("failed to import existing files: %w", err)
				}
				printf(cmd, "Imported %d of %d existing files\n", len(result.Documents), result.Requested)
			}

			printf(cmd, "%s %s for %s into %s (Ctrl+C to stop)\n",
				successColor("Watching"), dir, strings.Join(env.Config.WatchPatterns, ", "), idColor(kbID))
			return manager.Watch(ctx, kbID, dir)
		}),
	}
	watchCmd.Flags().BoolVar(&importExisting, "import-existing", false, "Import matching files already in the directory first")
	return watchCmd
}
