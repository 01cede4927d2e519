// Package recommend is the optional text-generation hook behind the weekly
// report's AI recommendations.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"fambalance/internal/models"

	"github.com/rs/zerolog"
)

// Request carries the weekly summary sent to the generator
type Request struct {
	FamilyName            string
	MemberNames           []string
	FamilyMoodSummary     []models.MoodCount
	IndividualMoodSummary []models.MemberMoodSummary
}

// Recommender produces wellness recommendations for a weekly summary
type Recommender interface {
	Recommend(ctx context.Context, req Request) ([]string, error)
}

const systemInstruction = "Você é um especialista em bem-estar familiar."

// Prompt renders the instruction text for req
func Prompt(req Request) string {
	family, _ := json.Marshal(req.FamilyMoodSummary)
	individual, _ := json.Marshal(req.IndividualMoodSummary)

	var b strings.Builder
	b.WriteString("Você é um especialista em bem-estar familiar, com foco em equilíbrio mental e conexão.\n")
	fmt.Fprintf(&b, "Analise o seguinte resumo de humor semanal da família %q e seus membros (%s).\n\n",
		req.FamilyName, strings.Join(req.MemberNames, ", "))
	fmt.Fprintf(&b, "Resumo de Humor Familiar: %s\n", family)
	fmt.Fprintf(&b, "Resumo de Humor Individual: %s\n\n", individual)
	b.WriteString("Com base nisso, forneça 3-5 recomendações automáticas para a família, em linguagem simples e empática, sem julgamentos. ")
	b.WriteString("As recomendações devem focar em:\n")
	b.WriteString("- Priorizar descanso (se houver estresse/ansiedade)\n")
	b.WriteString("- Buscar conversas leves (se houver tristeza/neutralidade)\n")
	b.WriteString("- Sugestões de atividades que promovam alegria e conexão.\n")
	b.WriteString("- Fomentar a gratidão e o autocuidado.\n\n")
	b.WriteString("Responda apenas com uma lista numerada das recomendações.")
	return b.String()
}

var listMarker = regexp.MustCompile(`^(?:\d+[.)]|[-*•])\s+`)

// ParseLines splits generated text into recommendations, dropping blank
// lines and list numbering
func ParseLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Fallback returns Static whenever Inner is missing, fails or returns nothing.
// It never returns an error.
type Fallback struct {
	Inner  Recommender
	Static []string
	Log    zerolog.Logger
}

// NewFallback wraps inner, which may be nil
func NewFallback(inner Recommender, static []string, log zerolog.Logger) *Fallback {
	return &Fallback{Inner: inner, Static: static, Log: log.With().Str("component", "recommend").Logger()}
}

func (f *Fallback) Recommend(ctx context.Context, req Request) ([]string, error) {
	if f.Inner == nil {
		return f.static(), nil
	}

	recs, err := f.Inner.Recommend(ctx, req)
	if err != nil {
		f.Log.Warn().Err(err).Msg("recommendation request failed, using fallback")
		return f.static(), nil
	}
	if len(recs) == 0 {
		f.Log.Warn().Msg("recommendation response was empty, using fallback")
		return f.static(), nil
	}
	return recs, nil
}

func (f *Fallback) static() []string {
	return append([]string(nil), f.Static...)
}
