package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	authUsername string
	authPassword string
	authEmail    string
	authRole     string

	currentPassword string
	newPassword     string
)

// authCmd groups authentication subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication operations",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange username/password for a bearer token",
	Long: `Log in with a username and password and print the issued token.
Store the token as reeve.api_key in the config to skip the login on
subsequent runs.`,
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runLogin,
}

var registerCmd = &cobra.Command{
	Use:      "register",
	Short:    "Register a new API user",
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runRegister,
}

var changePasswordCmd = &cobra.Command{
	Use:      "change-password",
	Short:    "Change the password of the authenticated user",
	PreRunE:  initializeApp,
	PostRunE: teardownApp,
	RunE:     runChangePassword,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(changePasswordCmd)

	loginCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&authRole, "role", "r", "user", "role for the new user")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("email")

	changePasswordCmd.Flags().StringVar(&currentPassword, "current", "", "current password")
	changePasswordCmd.Flags().StringVar(&newPassword, "new", "", "new password")
	_ = changePasswordCmd.MarkFlagRequired("current")
	_ = changePasswordCmd.MarkFlagRequired("new")
}

func runLogin(cmd *cobra.Command, args []string) error {
	login, err := client.Auth.Login(cmd.Context(), authUsername, authPassword)
	if err != nil {
		return err
	}

	fmt.Printf("Token: %s\n", login.Token)
	if login.Role != "" {
		fmt.Printf("Role:  %s\n", login.Role)
	}
	if login.ExpiresAt != nil {
		fmt.Printf("Expires: %s\n", login.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	result, err := client.Auth.Register(cmd.Context(), authUsername, authEmail, authPassword, authRole)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if result.User != nil {
		fmt.Printf("User #%d (%s, %s)\n", result.User.ID, result.User.Username, result.User.Role)
	}
	return nil
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	result, err := client.Auth.ChangePassword(cmd.Context(), currentPassword, newPassword)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	return nil
}
