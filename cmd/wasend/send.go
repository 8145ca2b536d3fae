package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/wasend/pkg/whatsapp"
)

var caption string

var textCmd = &cobra.Command{
	Use:   "text <receiver> <message...>",
	Short: "Send a text message",
	Example: `  wasend text 15551234567 "Hello there"
  wasend -b firefox text GroupInviteCode Meeting moved to 3pm`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendOne(cmd, whatsapp.Message{
			Kind:     whatsapp.KindText,
			Receiver: args[0],
			Text:     strings.Join(args[1:], " "),
		})
	},
}

var imageCmd = &cobra.Command{
	Use:     "image <receiver> <path>",
	Short:   "Send an image, optionally with a caption",
	Example: `  wasend image 15551234567 ./photo.jpg --caption "From the trip"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendOne(cmd, whatsapp.Message{
			Kind:     whatsapp.KindImage,
			Receiver: args[0],
			Path:     args[1],
			Caption:  caption,
		})
	},
}

var audioCmd = &cobra.Command{
	Use:     "audio <receiver> <path>",
	Short:   "Send an audio file",
	Example: `  wasend audio 15551234567 ./note.ogg`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendOne(cmd, whatsapp.Message{
			Kind:     whatsapp.KindAudio,
			Receiver: args[0],
			Path:     args[1],
		})
	},
}

func init() {
	imageCmd.Flags().StringVarP(&caption, "caption", "c", "", "text sent with the image")
}

func sendOne(cmd *cobra.Command, msg whatsapp.Message) error {
	s, err := openSender(cmd)
	if err != nil {
		return err
	}
	if err := s.Send(msg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", msg.Kind, msg.Receiver)
	return nil
}
