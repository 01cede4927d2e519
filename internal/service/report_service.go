package service

import (
	"context"
	"fmt"
	"time"

	"fambalance/internal/models"
	"fambalance/internal/recommend"
	"fambalance/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultReportWindowDays is how far back a weekly report looks
const DefaultReportWindowDays = 7

// Report texts
const (
	MsgReportNotFound    = "Relatório não encontrado."
	MsgInvalidReportDate = "Período do relatório inválido."

	RecPremiumUpsell    = "Assine o plano Premium para receber relatórios semanais com recomendações personalizadas por IA!"
	RecInsufficientData = "Não há dados de humor suficientes para gerar recomendações específicas esta semana. Continue registrando!"
	RecSuggestionsIntro = "Aqui estão algumas sugestões personalizadas de bem-estar:"
	RecClosing          = "Lembre-se: O bem-estar é uma jornada, e FamBalance está aqui para apoiar sua família a cada passo."
	recTopMoodTmpl      = "Sua família sentiu-se predominantemente %s nesta semana."
)

var cannedByMood = map[models.Emotion][2]string{
	models.EmotionStressed: {
		"Priorize atividades de relaxamento e respiração profunda. Considere momentos de silêncio e meditação em família.",
		"Identifiquem fontes de estresse e discutam estratégias para gerenciá-las juntos.",
	},
	models.EmotionSad: {
		"Incentivem mais momentos de conexão e apoio mútuo. Pequenos gestos de carinho podem fazer a diferença.",
		"Conversem abertamente sobre sentimentos, criando um espaço seguro para expressar a tristeza.",
	},
	models.EmotionHappy: {
		"Continuem celebrando as pequenas vitórias e os momentos de alegria. Compartilhem o que os fez felizes!",
		"Pensem em novas atividades divertidas para fortalecer ainda mais os laços familiares.",
	},
	models.EmotionNeutral: {
		"Explorem novas atividades em família para despertar a alegria e a conexão.",
		"Reflitam sobre o que poderia trazer mais emoções positivas para o dia a dia.",
	},
}

func init() {
	cannedByMood[models.EmotionAnxious] = cannedByMood[models.EmotionStressed]
}

// SummarizeMoods counts moods per member and for the whole family. Every
// summary lists all five emotions in declaration order, zeros included.
// The family counts include every mood passed in, member or not.
func SummarizeMoods(moods []models.DailyMood, members []models.User) ([]models.MemberMoodSummary, []models.MoodCount) {
	individual := make([]models.MemberMoodSummary, 0, len(members))
	for _, member := range members {
		counts := make(map[models.Emotion]int)
		for _, m := range moods {
			if m.UserID == member.ID {
				counts[m.Emotion]++
			}
		}
		individual = append(individual, models.MemberMoodSummary{UserID: member.ID, MoodData: moodCounts(counts)})
	}

	familyCounts := make(map[models.Emotion]int)
	for _, m := range moods {
		familyCounts[m.Emotion]++
	}
	return individual, moodCounts(familyCounts)
}

func moodCounts(counts map[models.Emotion]int) []models.MoodCount {
	out := make([]models.MoodCount, 0, len(models.AllEmotions()))
	for _, e := range models.AllEmotions() {
		out = append(out, models.MoodCount{Emotion: e, Count: counts[e]})
	}
	return out
}

// TopEmotion returns the most frequent emotion; ties go to the earlier
// emotion in declaration order. ok is false when every count is zero.
func TopEmotion(summary []models.MoodCount) (top models.Emotion, ok bool) {
	best := 0
	for _, mc := range summary {
		if mc.Count > best {
			best = mc.Count
			top = mc.Emotion
		}
	}
	return top, best > 0
}

// BuildRecommendations selects the canned report text
func BuildRecommendations(familySummary []models.MoodCount, premium bool) []string {
	if !premium {
		return []string{RecPremiumUpsell}
	}

	top, ok := TopEmotion(familySummary)
	if !ok {
		return []string{RecInsufficientData}
	}

	canned := cannedByMood[top]
	return []string{
		fmt.Sprintf(recTopMoodTmpl, top),
		RecSuggestionsIntro,
		canned[0],
		canned[1],
		RecClosing,
	}
}

// ReportService generates and reads weekly mood reports
type ReportService struct {
	reportRepo  *repository.ReportRepository
	moodRepo    *repository.MoodRepository
	familyRepo  *repository.FamilyRepository
	userRepo    *repository.UserRepository
	recommender *recommend.Fallback
	now         func() time.Time
	log         zerolog.Logger

	WindowDays int
}

// NewReportService creates a new report service. recommender may be nil, in
// which case AIRecommendations always answers with fallback.
func NewReportService(reportRepo *repository.ReportRepository, moodRepo *repository.MoodRepository, familyRepo *repository.FamilyRepository, userRepo *repository.UserRepository, recommender recommend.Recommender, fallback []string, now func() time.Time, log zerolog.Logger) *ReportService {
	if now == nil {
		now = time.Now
	}
	logger := log.With().Str("component", "report").Logger()
	return &ReportService{
		reportRepo:  reportRepo,
		moodRepo:    moodRepo,
		familyRepo:  familyRepo,
		userRepo:    userRepo,
		recommender: recommend.NewFallback(recommender, fallback, logger),
		now:         now,
		log:         logger,
		WindowDays:  DefaultReportWindowDays,
	}
}

// Generate builds, stores and returns the report for the inclusive window
// [startDate, endDate]
func (s *ReportService) Generate(ctx context.Context, familyID, startDate, endDate string, premium bool, members []models.User) (*models.Report, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return nil, validationError(MsgInvalidReportDate, err)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return nil, validationError(MsgInvalidReportDate, err)
	}
	if start.After(end) {
		return nil, validationError(MsgInvalidReportDate, nil)
	}

	moods, err := s.moodRepo.GetFamilyMoodsInRange(ctx, familyID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	individual, family := SummarizeMoods(moods, members)
	report := &models.Report{
		ID:                    uuid.NewString(),
		FamilyID:              familyID,
		StartDate:             startDate,
		EndDate:               endDate,
		IndividualMoodSummary: individual,
		FamilyMoodSummary:     family,
		Recommendations:       BuildRecommendations(family, premium),
	}
	if err := s.reportRepo.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("family_id", familyID).
		Str("report_id", report.ID).
		Int("moods", len(moods)).
		Bool("premium", premium).
		Msg("report generated")
	return report, nil
}

// GenerateWeekly reports on the last WindowDays days up to today, for the
// family's current members and effective premium status
func (s *ReportService) GenerateWeekly(ctx context.Context, familyID string) (*models.Report, error) {
	family, err := s.familyRepo.GetFamilyByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, notFound(MsgFamilyNotFound)
	}

	members, err := s.userRepo.GetUsersByIDs(ctx, family.MemberIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	end := models.FormatDate(now)
	start := models.FormatDate(now.AddDate(0, 0, -s.WindowDays))
	return s.Generate(ctx, familyID, start, end, family.IsEffectivelyPremium(now), members)
}

// GetLast returns the family's report with the latest end date, or nil.
// Among equal end dates the first stored wins.
func (s *ReportService) GetLast(ctx context.Context, familyID string) (*models.Report, error) {
	reports, err := s.reportRepo.GetFamilyReports(ctx, familyID)
	if err != nil {
		return nil, err
	}

	var last *models.Report
	for i := range reports {
		if last == nil || reports[i].EndDate > last.EndDate {
			last = &reports[i]
		}
	}
	return last, nil
}

// GetByID retrieves a report or a not-found error
func (s *ReportService) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, notFound(MsgReportNotFound)
	}
	return report, nil
}

// AIRecommendations asks the recommendation hook about report. Any failure
// yields the static fallback list.
func (s *ReportService) AIRecommendations(ctx context.Context, report *models.Report, familyName string, memberNames []string) []string {
	// Fallback never returns an error
	recs, _ := s.recommender.Recommend(ctx, recommend.Request{
		FamilyName:            familyName,
		MemberNames:           memberNames,
		FamilyMoodSummary:     report.FamilyMoodSummary,
		IndividualMoodSummary: report.IndividualMoodSummary,
	})
	return recs
}
