package portfolio

import (
	"context"
	"slices"
)

type Profile struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Bio      string   `json:"bio"`
	Email    string   `json:"email"`
	LinkedIn string   `json:"linkedin"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
}

type Experience struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Project struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Image        string   `json:"image"`
	Featured     bool     `json:"featured"`
}

type Education struct {
	ID             int    `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Year           string `json:"year"`
	Specialization string `json:"specialization"`
}

type Certification struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

// Document is the whole portfolio as loaded from the fixture.
type Document struct {
	Profile        Profile         `json:"profile"`
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

// Clone returns a deep copy so callers can never alias the store's slices.
func (d Document) Clone() Document {
	out := Document{Profile: d.Profile.Clone()}
	out.Experiences = cloneEach(d.Experiences, Experience.Clone)
	out.Projects = cloneEach(d.Projects, Project.Clone)
	out.Education = slices.Clone(orEmpty(d.Education))
	out.Certifications = slices.Clone(orEmpty(d.Certifications))
	return out
}

// Normalize replaces nil lists with empty ones.
func (d *Document) Normalize() {
	d.Profile.Skills = orEmpty(d.Profile.Skills)
	d.Experiences = orEmpty(d.Experiences)
	for i := range d.Experiences {
		d.Experiences[i].Achievements = orEmpty(d.Experiences[i].Achievements)
	}
	d.Projects = orEmpty(d.Projects)
	for i := range d.Projects {
		d.Projects[i].Technologies = orEmpty(d.Projects[i].Technologies)
	}
	d.Education = orEmpty(d.Education)
	d.Certifications = orEmpty(d.Certifications)
}

func (p Profile) Clone() Profile {
	p.Skills = slices.Clone(orEmpty(p.Skills))
	return p
}

func (e Experience) Clone() Experience {
	e.Achievements = slices.Clone(orEmpty(e.Achievements))
	return e
}

func (p Project) Clone() Project {
	p.Technologies = slices.Clone(orEmpty(p.Technologies))
	return p
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Repository holds the live document. Replace* calls swap a whole slice
// of the document in one step.
type Repository interface {
	Get(ctx context.Context) Document
	ReplaceProfile(ctx context.Context, p Profile)
	ReplaceExperiences(ctx context.Context, items []Experience)
	ReplaceProjects(ctx context.Context, items []Project)
	ReplaceEducation(ctx context.Context, education []Education, certifications []Certification)
}
