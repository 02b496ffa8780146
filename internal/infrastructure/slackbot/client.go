package slackbot

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/nagampere/MLIT-Summary-Bot/internal/ports"
)

// Client adapts the Slack Web API to the Messenger port.
type Client struct {
	api *slack.Client
}

var _ ports.Messenger = (*Client)(nil)

// New builds a client from a bot token.
func New(token string) *Client {
	return &Client{api: slack.New(token)}
}

// NewFromAPI wires a preconfigured API client, used by tests to point at a
// local server.
func NewFromAPI(api *slack.Client) *Client {
	return &Client{api: api}
}

// PostBlocks posts the block set to a channel or conversation with a plain
// fallback text for notifications.
func (c *Client) PostBlocks(ctx context.Context, channelID string, blocks []slack.Block, fallback string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(fallback, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post message to %s: %w", channelID, err)
	}
	return nil
}

// OpenDirectMessage resolves the conversation ID for a user's DM.
func (c *Client) OpenDirectMessage(ctx context.Context, userID string) (string, error) {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return "", fmt.Errorf("open conversation with %s: %w", userID, err)
	}
	return channel.ID, nil
}
