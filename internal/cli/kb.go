package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mdkb/internal/service"
	"mdkb/internal/storage"
)

const timeLayout = "2006-01-02 15:04:05"

func newKBCmd(a *app) *cobra.Command {
	kbCmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage knowledge bases",
		Long:  `Create, list, inspect and delete knowledge bases.`,
	}

	var description string
	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			kb, err := env.Service.CreateKnowledgeBase(cmd.Context(), args[0], description)
			if err != nil {
				return fmt.Errorf("failed to create knowledge base: %w", err)
			}
			if done, err := a.printJSON(cmd, kb); done {
				return err
			}
			printf(cmd, "%s knowledge base %s (%s)\n", successColor("Created"), kb.Name, idColor(kb.ID))
			return nil
		}),
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the knowledge base")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge bases",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			kbs, err := env.Service.ListKnowledgeBases(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list knowledge bases: %w", err)
			}
			if done, err := a.printJSON(cmd, kbs); done {
				return err
			}
			if len(kbs) == 0 {
				printf(cmd, "No knowledge bases found\n")
				return nil
			}

			printHeader(cmd, "Knowledge bases:\n\n")
			for i := range kbs {
				printf(cmd, "  %s\n", idColor(kbs[i].ID))
				printf(cmd, "    Name:      %s\n", kbs[i].Name)
				printf(cmd, "    Documents: %d\n", kbs[i].DocumentCount)
				printLine(cmd)
			}
			printf(cmd, "Total: %d knowledge bases\n", len(kbs))
			return nil
		}),
	}

	getCmd := &cobra.Command{
		Use:   "get [kb-id]",
		Short: "Show a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			kb, found, err := env.Service.GetKnowledgeBase(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get knowledge base: %w", err)
			}
			if !found {
				return fmt.Errorf("knowledge base %s: %w", args[0], service.ErrNotFound)
			}
			if done, err := a.printJSON(cmd, kb); done {
				return err
			}
			printKnowledgeBase(cmd, kb)
			return nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [kb-id]",
		Short: "Delete a knowledge base and its documents",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			if err := env.Service.DeleteKnowledgeBase(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete knowledge base: %w", err)
			}
			printf(cmd, "%s knowledge base %s\n", successColor("Deleted"), idColor(args[0]))
			return nil
		}),
	}

	statsCmd := &cobra.Command{
		Use:   "stats [kb-id]",
		Short: "Show chunk coverage statistics",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			stats, found, err := env.Service.Stats(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}
			if !found {
				return fmt.Errorf("knowledge base %s: %w", args[0], service.ErrNotFound)
			}
			if done, err := a.printJSON(cmd, stats); done {
				return err
			}

			printHeader(cmd, "Stats for %s:\n\n", args[0])
			printf(cmd, "  Documents:          %d\n", stats.Documents)
			printf(cmd, "  Without chunks:     %d\n", stats.DocsWith0Chunks)
			printf(cmd, "  Chunks:             %d\n", stats.Chunks)
			printf(cmd, "  Words:              %d\n", stats.Words)
			printf(cmd, "  Headings:           %d\n", stats.Headings)
			printf(cmd, "  Tokens per chunk:   min %d, max %d, mean %.1f, p95 %d\n",
				stats.ChunkTokenStats.Min, stats.ChunkTokenStats.Max,
				stats.ChunkTokenStats.Mean, stats.ChunkTokenStats.P95)
			printf(cmd, "  Chunker version:    %s\n", stats.ChunkerVersion)
			return nil
		}),
	}

	kbCmd.AddCommand(createCmd, listCmd, getCmd, deleteCmd, statsCmd)
	return kbCmd
}

func printKnowledgeBase(cmd *cobra.Command, kb storage.KnowledgeBase) {
	printHeader(cmd, "Knowledge base: %s\n\n", kb.ID)
	printf(cmd, "  Name:        %s\n", kb.Name)
	if kb.Description != "" {
		printf(cmd, "  Description: %s\n", kb.Description)
	}
	printf(cmd, "  Documents:   %d\n", kb.DocumentCount)
	printf(cmd, "  Created:     %s\n", kb.CreatedAt.Format(timeLayout))
	printf(cmd, "  Updated:     %s\n", kb.UpdatedAt.Format(timeLayout))
}
