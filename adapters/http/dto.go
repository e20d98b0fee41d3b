package http

import (
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/cms"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
)

// Editor forms post the whole draft on every button press.

type ProfileForm struct {
	Name     string   `form:"name"`
	Title    string   `form:"title"`
	Bio      string   `form:"bio"`
	Email    string   `form:"email"`
	LinkedIn string   `form:"linkedin"`
	Location string   `form:"location"`
	Skills   []string `form:"skills"`
}

func (f ProfileForm) ToDomain() portfolio.Profile {
	return portfolio.Profile{
		Name:     f.Name,
		Title:    f.Title,
		Bio:      f.Bio,
		Email:    f.Email,
		LinkedIn: f.LinkedIn,
		Location: f.Location,
		Skills:   orEmpty(f.Skills),
	}
}

type ExperienceForm struct {
	Title        string   `form:"title"`
	Company      string   `form:"company"`
	Period       string   `form:"period"`
	Location     string   `form:"location"`
	Description  string   `form:"description"`
	Achievements []string `form:"achievements"`
}

func (f ExperienceForm) ToDomain() portfolio.Experience {
	return portfolio.Experience{
		Title:        f.Title,
		Company:      f.Company,
		Period:       f.Period,
		Location:     f.Location,
		Description:  f.Description,
		Achievements: orEmpty(f.Achievements),
	}
}

type ProjectForm struct {
	Title        string   `form:"title"`
	Description  string   `form:"description"`
	Technologies []string `form:"technologies"`
	URL          string   `form:"url"`
	Image        string   `form:"image"`
	Featured     bool     `form:"featured"`
}

func (f ProjectForm) ToDomain() portfolio.Project {
	return portfolio.Project{
		Title:        f.Title,
		Description:  f.Description,
		Technologies: orEmpty(f.Technologies),
		URL:          f.URL,
		Image:        f.Image,
		Featured:     f.Featured,
	}
}

type EducationForm struct {
	Degree         string `form:"degree"`
	Institution    string `form:"institution"`
	Year           string `form:"year"`
	Specialization string `form:"specialization"`
}

func (f EducationForm) ToDomain() portfolio.Education {
	return portfolio.Education{
		Degree:         f.Degree,
		Institution:    f.Institution,
		Year:           f.Year,
		Specialization: f.Specialization,
	}
}

type CertificationForm struct {
	Name   string `form:"name"`
	Issuer string `form:"issuer"`
	Year   string `form:"year"`
}

func (f CertificationForm) ToDomain() portfolio.Certification {
	return portfolio.Certification{Name: f.Name, Issuer: f.Issuer, Year: f.Year}
}

// ActionForm identifies the pressed button. A "remove" button carries the
// list item to drop as its value.
type ActionForm struct {
	Action  string `form:"action"`
	Pending string `form:"pending"`
	Field   string `form:"field"`
	Value   string `form:"value"`
	Remove  string `form:"remove"`
}

// Resolve maps the form to an action and the list value it applies to.
func (f ActionForm) Resolve() (cms.Action, string, error) {
	if f.Remove != "" {
		return cms.ActionRemoveItem, f.Remove, nil
	}
	action, err := cms.ParseAction(f.Action)
	if err != nil {
		return "", "", err
	}
	value := f.Value
	if action == cms.ActionAddItem && value == "" {
		value = f.Pending
	}
	return action, value, nil
}

type SectionForm struct {
	Section string `form:"section" json:"section" binding:"required"`
}

type TabForm struct {
	Tab string `form:"tab" json:"tab" binding:"required"`
}

type PendingRequest struct {
	Value string `json:"value"`
}

type ListItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
