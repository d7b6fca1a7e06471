package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bloodbank-api/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "josé pérez", textnorm.Fold("  José   PÉREZ "))
	assert.Equal(t, "", textnorm.Fold("   "))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "ana@hospital.org", textnorm.Email(" Ana@Hospital.ORG "))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "San Vicente De Paul", textnorm.Title("san  vicente de paul"))
}
