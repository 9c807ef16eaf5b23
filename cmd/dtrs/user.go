package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doctrans/dtrs/model"
)

const (
	emailFlag    = "email"
	nameFlag     = "name"
	passwordFlag = "password"
)

func init() {
	userCmd.PersistentFlags().String(serverFlag, "http://localhost:8099", "The DTRS server to communicate with")
	userCmd.PersistentFlags().String(tokenFlag, "", "Session token obtained from dtrs user login")
	userCmd.PersistentFlags().Bool(asAdminFlag, false, "Act with the administrator role")

	userRegisterCmd.Flags().String(emailFlag, "", "Email address of the new account")
	userRegisterCmd.Flags().String(nameFlag, "", "Display name of the new account")
	userRegisterCmd.Flags().String(passwordFlag, "", "Password for the new account")
	userRegisterCmd.MarkFlagRequired(emailFlag)
	userRegisterCmd.MarkFlagRequired(nameFlag)
	userRegisterCmd.MarkFlagRequired(passwordFlag)

	userLoginCmd.Flags().String(emailFlag, "", "Email address of the account")
	userLoginCmd.Flags().String(passwordFlag, "", "Password of the account")
	userLoginCmd.MarkFlagRequired(emailFlag)
	userLoginCmd.MarkFlagRequired(passwordFlag)

	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userLoginCmd)
	userCmd.AddCommand(userListCmd)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts on the DTRS server",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, _ := clientAndSession(command)

		email, _ := command.Flags().GetString(emailFlag)
		name, _ := command.Flags().GetString(nameFlag)
		password, _ := command.Flags().GetString(passwordFlag)

		user, err := client.Register(&model.RegisterRequest{
			Email:    email,
			Name:     name,
			Password: password,
		})
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token for use with --token",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, _ := clientAndSession(command)

		email, _ := command.Flags().GetString(emailFlag)
		password, _ := command.Flags().GetString(passwordFlag)

		session, err := client.Login(&model.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Println(session.Token)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts; requires an administrator session",
	RunE: func(command *cobra.Command, args []string) error {
		command.SilenceUsage = true
		client, session := clientAndSession(command)

		users, err := client.GetUsers(session)
		if err != nil {
			return err
		}
		return printJSON(users)
	},
}
