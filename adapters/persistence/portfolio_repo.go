package persistence

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// memoryPortfolioRepo keeps the document in process memory only. Every
// read returns a deep copy; every write stores one.
type memoryPortfolioRepo struct {
	mu     sync.RWMutex
	doc    portfolio.Document
	logger logger.Logger
}

func NewMemoryPortfolioRepo(initial portfolio.Document, logger logger.Logger) portfolio.Repository {
	doc := initial.Clone()
	doc.Normalize()
	return &memoryPortfolioRepo{doc: doc, logger: logger}
}

func (r *memoryPortfolioRepo) Get(ctx context.Context) portfolio.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc.Clone()
}

func (r *memoryPortfolioRepo) ReplaceProfile(ctx context.Context, p portfolio.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Profile = p.Clone()
	r.logger.Debug("Profile replaced", zap.String("name", p.Name))
}

func (r *memoryPortfolioRepo) ReplaceExperiences(ctx context.Context, items []portfolio.Experience) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Experiences = portfolio.Document{Experiences: items}.Clone().Experiences
	r.logger.Debug("Experiences replaced", zap.Int("count", len(items)))
}

func (r *memoryPortfolioRepo) ReplaceProjects(ctx context.Context, items []portfolio.Project) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc.Projects = portfolio.Document{Projects: items}.Clone().Projects
	r.logger.Debug("Projects replaced", zap.Int("count", len(items)))
}

func (r *memoryPortfolioRepo) ReplaceEducation(ctx context.Context, education []portfolio.Education, certifications []portfolio.Certification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := portfolio.Document{Education: education, Certifications: certifications}.Clone()
	r.doc.Education = next.Education
	r.doc.Certifications = next.Certifications
	r.logger.Debug("Education replaced",
		zap.Int("education", len(education)),
		zap.Int("certifications", len(certifications)),
	)
}
