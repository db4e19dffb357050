package cli

import (
	"fmt"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/spf13/cobra"
)

var (
	profileName   string
	profileAvatar string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long:  `Show the current profile, or update the display name and avatar URL with flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadClient()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") || cmd.Flags().Changed("avatar") {
			current, err := client.GetProfile()
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			fields := api.ProfileFields{
				DisplayName: current.DisplayName,
				AvatarURL:   current.AvatarURL,
			}
			if cmd.Flags().Changed("name") {
				fields.DisplayName = profileName
			}
			if cmd.Flags().Changed("avatar") {
				fields.AvatarURL = profileAvatar
			}

			updated, err := client.UpdateProfile(fields)
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
			printProfileInfo(updated.Email, updated.DisplayName, updated.AvatarURL)
			return nil
		}

		profile, err := client.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		printProfileInfo(profile.Email, profile.DisplayName, profile.AvatarURL)
		return nil
	},
}

func printProfileInfo(email, displayName, avatarURL string) {
	fmt.Printf("Email:        %s\n", email)
	if displayName != "" {
		fmt.Printf("Display name: %s\n", displayName)
	}
	if avatarURL != "" {
		fmt.Printf("Avatar:       %s\n", avatarURL)
	}
}

func init() {
	profileCmd.Flags().StringVar(&profileName, "name", "", "New display name")
	profileCmd.Flags().StringVar(&profileAvatar, "avatar", "", "New avatar URL")
}
