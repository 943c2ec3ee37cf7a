// Command test-notification sends a test message through the Lark IM API to
// verify credentials and recipient configuration without running the full
// service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"

	"github.com/EGUS74/SSS-Construction-Reports/internal/config"
	larkclient "github.com/EGUS74/SSS-Construction-Reports/internal/infrastructure/external/lark"
	"github.com/EGUS74/SSS-Construction-Reports/pkg/utils"
)

func main() {
	fmt.Println("=== Lark IM Notification Test ===")
	fmt.Println("Sends a test message to the configured stakeholder recipient.")
	fmt.Println()

	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      "debug",
		OutputPath: "stdout",
		Format:     "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	recipient := cfg.Notification.Recipient
	if len(os.Args) > 1 {
		recipient = os.Args[1]
	}

	fmt.Printf("App ID: %s\n", mask(cfg.Lark.AppID))
	fmt.Printf("Recipient: %s\n", recipient)

	client := larkclient.NewClient(larkclient.Config{
		AppID:     cfg.Lark.AppID,
		AppSecret: cfg.Lark.AppSecret,
	}, logger)
	messenger := larkclient.NewMessenger(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Lark.APITimeout)
	defer cancel()

	message := fmt.Sprintf("Test notification from the report review service at %s.",
		time.Now().Format(time.RFC3339))

	if err := messenger.SendMessage(ctx, recipient, message); err != nil {
		fmt.Fprintf(os.Stderr, "\n✗ Failed to send message: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n✓ Message sent successfully")
}

func mask(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
