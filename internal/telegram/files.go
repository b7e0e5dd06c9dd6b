package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-telegram/bot"

	"github.com/arogya-mitra/arogyabot/internal/config"
)

// DownloadFile downloads a file from Telegram by file ID. Downloads are
// capped at config.MaxUploadBytes.
func DownloadFile(ctx context.Context, b *bot.Bot, fileID string) ([]byte, string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	fileURL := b.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, config.MaxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read file data: %w", err)
	}
	if len(data) > config.MaxUploadBytes {
		return nil, "", fmt.Errorf("file exceeds %d bytes", config.MaxUploadBytes)
	}

	return data, file.FilePath, nil
}

// GetFileURL returns the download URL for a Telegram file.
func GetFileURL(ctx context.Context, b *bot.Bot, fileID string) (string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}
	return b.FileDownloadLink(file), nil
}
