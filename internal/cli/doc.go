package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mdkb/internal/service"
	"mdkb/internal/storage"
)

func newDocCmd(a *app) *cobra.Command {
	docCmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage documents",
		Long:  `Import, list, inspect and delete documents.`,
	}

	importCmd := &cobra.Command{
		Use:   "import [kb-id] [path...]",
		Short: "Import markdown files or directories",
		Long: `Imports each path into the knowledge base. Directories are scanned
recursively for files matching the configured watch patterns. Files that
cannot be read are reported and skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			manager, err := newManager(env)
			if err != nil {
				return err
			}
			result, err := manager.ImportPaths(cmd.Context(), args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to import documents: %w", err)
			}
			if done, err := a.printJSON(cmd, result.Documents); done {
				return err
			}

			for i := range result.Documents {
				doc := &result.Documents[i]
				printf(cmd, "  %s %s (%d chunks)\n", idColor(doc.ID), doc.Path, len(doc.Chunks))
			}
			summary := fmt.Sprintf("Imported %d of %d files", len(result.Documents), result.Requested)
			if result.Failed() > 0 {
				printf(cmd, "%s, %s\n", summary, warnColor(fmt.Sprintf("%d failed", result.Failed())))
			} else {
				printf(cmd, "%s\n", successColor(summary))
			}
			return nil
		}),
	}

	listCmd := &cobra.Command{
		Use:   "list [kb-id]",
		Short: "List documents of a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			docs, err := env.Service.GetDocuments(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}
			if done, err := a.printJSON(cmd, docs); done {
				return err
			}
			if len(docs) == 0 {
				printf(cmd, "No documents found for knowledge base: %s\n", args[0])
				return nil
			}

			printHeader(cmd, "Documents for knowledge base %s:\n\n", args[0])
			for i := range docs {
				printf(cmd, "  %s\n", idColor(docs[i].ID))
				printf(cmd, "    Title:  %s\n", docs[i].Title)
				printf(cmd, "    Path:   %s\n", docs[i].Path)
				printf(cmd, "    Chunks: %d\n", len(docs[i].Chunks))
				printLine(cmd)
			}
			printf(cmd, "Total: %d documents\n", len(docs))
			return nil
		}),
	}

	var showContent bool
	getCmd := &cobra.Command{
		Use:   "get [doc-id]",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			doc, found, err := env.Service.GetDocument(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get document: %w", err)
			}
			if !found {
				return fmt.Errorf("document %s: %w", args[0], service.ErrNotFound)
			}
			if done, err := a.printJSON(cmd, doc); done {
				return err
			}
			printDocument(cmd, doc)
			if showContent {
				printLine(cmd)
				printLine(cmd, doc.Content)
			}
			return nil
		}),
	}
	getCmd.Flags().BoolVarP(&showContent, "content", "c", false, "Print the document content")

	deleteCmd := &cobra.Command{
		Use:   "delete [doc-id]",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string, env *Env) error {
			if err := env.Service.DeleteDocument(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete document: %w", err)
			}
			printf(cmd, "%s document %s\n", successColor("Deleted"), idColor(args[0]))
			return nil
		}),
	}

	docCmd.AddCommand(importCmd, listCmd, getCmd, deleteCmd)
	return docCmd
}

func printDocument(cmd *cobra.Command, doc storage.Document) {
	printHeader(cmd, "Document: %s\n\n", doc.ID)
	printf(cmd, "  Title:    %s\n", doc.Title)
	printf(cmd, "  KB:       %s\n", doc.KBID)
	printf(cmd, "  Path:     %s\n", doc.Path)
	printf(cmd, "  Created:  %s\n", doc.CreatedAt.Format(timeLayout))
	printf(cmd, "  Lines:    %d\n", doc.Metadata.LineCount)
	printf(cmd, "  Words:    %d\n", doc.Metadata.WordCount)
	printf(cmd, "  Chunks:   %d\n", len(doc.Chunks))
	if len(doc.Metadata.Keywords) > 0 {
		printf(cmd, "  Keywords: %s\n", strings.Join(doc.Metadata.Keywords, ", "))
	}

	if len(doc.Metadata.Headings) > 0 {
		printLine(cmd, "\n  Headings:")
		for _, h := range doc.Metadata.Headings {
			printf(cmd, "    %s%s (line %d)\n", strings.Repeat("  ", h.Level-1), h.Text, h.Line+1)
		}
	}
}
