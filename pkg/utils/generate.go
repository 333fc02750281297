package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUIDString() string {
	return uuid.New().String()
}

// ==================== ATTEMPT ID ====================

// GenerateAttemptID creates a correlation ID for one reservation attempt.
// Format: RSV-YYYYMMDD-HHMMSS-RANDOM
func GenerateAttemptID() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RSV-%s-%s-%s", datePart, timePart, randomPart)
}
