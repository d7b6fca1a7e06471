// Package textnorm normaliza texto libre (emails, búsquedas) antes de compararlo o persistirlo.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold aplica case folding Unicode y colapsa espacios internos.
// "  José  PÉREZ " -> "josé pérez".
func Fold(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// Email normaliza un email para unicidad: sin espacios y en minúsculas.
func Email(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Title capitaliza nombres propios para presentación ("san vicente" -> "San Vicente").
func Title(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(strings.Fields(s), " "))
}
