package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/doctrans/dtrs/model"
)

const (
	serverFlag  = "server"
	tokenFlag   = "token"
	asAdminFlag = "as-admin"
	idFlag      = "id"
	commentFlag = "comment"
	fileFlag    = "file"
)

func init() {
	requestCmd.PersistentFlags().String(serverFlag, "http://localhost:8099", "The DTRS server to communicate with")
	requestCmd.PersistentFlags().String(tokenFlag, "", "Session token obtained from dtrs user login")
	requestCmd.PersistentFlags().Bool(asAdminFlag, false, "Act with the administrator role")

	for _, cmd := range []*cobra.Command{
		requestGetCmd, requestApproveCmd, requestRejectCmd,
		requestCompleteCmd, requestResubmitCmd, requestDeleteCmd,
	} {
		cmd.Flags().String(idFlag, "", "The ID of the translation request")
		cmd.MarkFlagRequired(idFlag)
	}
	requestApproveCmd.Flags().String(commentFlag, "", "Optional comment to attach to the approval")
	requestRejectCmd.Flags().String(commentFlag, "", "Comment explaining the rejection; required")
	requestCompleteCmd.Flags().String(commentFlag, "", "Optional comment to attach to the completion")
	requestCompleteCmd.Flags().String(fileFlag, "", "Path to the translated document")
	requestCompleteCmd.MarkFlagRequired(fileFlag)
	requestResubmitCmd.Flags().String(commentFlag, "", "Optional comment to attach to the resubmission")
	requestResubmitCmd.Flags().String(fileFlag, "", "Path to a replacement document")

	requestCmd.AddCommand(requestListCmd)
	requestCmd.AddCommand(requestGetCmd)
	requestCmd.AddCommand(requestApproveCmd)
	requestCmd.AddCommand(requestRejectCmd)
	requestCmd.AddCommand(requestCompleteCmd)
	requestCmd.AddCommand(requestResubmitCmd)
	requestCmd.AddCommand(requestDeleteCmd)
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Inspect and act on translation requests on the DTRS server",
}

func clientAndSession(command *cobra.Command) (*model.Client, *model.Session) {
	server, _ := command.Flags().GetString(serverFlag)
	token, _ := command.Flags().GetString(tokenFlag)
	admin, _ := command.Flags().GetBool(asAdminFlag)

	return model.NewClient(server), &model.Session{Token: token, Admin: admin}
}

func fetchRequest(command *cobra.Command, client *model.Client, session *model.Session) (*model.TranslationRequest, error) {
	id, _ := command.Flags().GetString(idFlag)
	request, err := client.GetTranslationRequest(session, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch translation request %s", id)
	}
	return request, nil
}

func printJSON(data interface{}) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to render output")
	}
	fmt.Println(string(output))
	return nil
}

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List translation requests; admins see every request",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		if session.Admin {
			requests, err := client.GetAllTranslationRequests(session)
			if err != nil {
				return err
			}
			return printJSON(requests)
		}

		requests, err := client.GetTranslationRequests(session)
		if err != nil {
			return err
		}
		return printJSON(requests)
	},
}

var requestGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch a single translation request",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}
		return printJSON(request)
	},
}

var requestApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve a pending or resubmitted translation request",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}

		comment, _ := command.Flags().GetString(commentFlag)
		updated, err := client.ApproveTranslationRequest(session, request, comment)
		if err != nil {
			return err
		}
		return printJSON(updated)
	},
}

var requestRejectCmd = &cobra.Command{
	Use:   "reject",
	Short: "Reject a pending or resubmitted translation request",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}

		comment, _ := command.Flags().GetString(commentFlag)
		updated, err := client.RejectTranslationRequest(session, request, comment)
		if err != nil {
			return err
		}
		return printJSON(updated)
	},
}

var requestCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Attach a translated document to an approved request and mark it completed",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}

		path, _ := command.Flags().GetString(fileFlag)
		file, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "failed to open translated document %s", path)
		}
		defer file.Close()

		comment, _ := command.Flags().GetString(commentFlag)
		updated, err := client.CompleteTranslationRequest(session, request, comment, filepath.Base(path), file)
		if err != nil {
			return err
		}
		return printJSON(updated)
	},
}

var requestResubmitCmd = &cobra.Command{
	Use:   "resubmit",
	Short: "Resubmit a rejected translation request, optionally with a replacement document",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}

		comment, _ := command.Flags().GetString(commentFlag)
		path, _ := command.Flags().GetString(fileFlag)

		var updated *model.TranslationRequest
		if path == "" {
			updated, err = client.ResubmitTranslationRequest(session, request, comment, "", nil)
		} else {
			var file *os.File
			file, err = os.Open(path)
			if err != nil {
				return errors.Wrapf(err, "failed to open replacement document %s", path)
			}
			defer file.Close()
			updated, err = client.ResubmitTranslationRequest(session, request, comment, filepath.Base(path), file)
		}
		if err != nil {
			return err
		}
		return printJSON(updated)
	},
}

var requestDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a pending translation request",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		request, err := fetchRequest(command, client, session)
		if err != nil {
			return err
		}

		return client.DeleteTranslationRequest(session, request)
	},
}
