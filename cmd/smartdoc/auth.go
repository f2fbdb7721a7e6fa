package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartdoc/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var (
	loginPassword    string
	registerName     string
	registerPassword string
	registerRole     string
)

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name (required)")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (required)")
	registerCmd.Flags().StringVar(&registerRole, "role", "user", "Account role: user, manager or admin")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Login(cmd.Context(), args[0], loginPassword)
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Printf("Signed in as %s (%s)\n", resp.Data.User.Name, resp.Data.User.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Register(cmd.Context(), api.RegisterRequest{
		Name:     registerName,
		Email:    args[0],
		Password: registerPassword,
		Role:     registerRole,
	})
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	fmt.Printf("Registered %s (%s)\n", resp.Data.User.Name, resp.Data.User.Email)
	return nil
}

func runLogout(_ *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	return respond(client.Me(cmd.Context()))
}
