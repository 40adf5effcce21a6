package services

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"innovia-cms/pkg/models"
)

const suffixLen = 9

// NewContentID builds "<type>-<unix millis>-<random base36 suffix>".
func NewContentID(t models.ContentType, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", t, now.UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).Text(36)
	for len(s) < suffixLen {
		s = "0" + s
	}
	return s[len(s)-suffixLen:]
}
