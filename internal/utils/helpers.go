package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

func DeserializeFromJSON(data []byte, target interface{}) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("[Utils] failed to deserialize message: %w", err)
	}
	return nil
}

// HandleConsumerError logs read/decode failures in a consumer loop; context
// cancellation is shutdown, not an error.
func HandleConsumerError(err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	slog.Error("[Consumer] Message handling failed",
		slog.String("error", err.Error()))
}
