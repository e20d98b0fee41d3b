package section

import "errors"

// Section is one of the editor panes reachable from the CMS sidebar.
type Section string

const (
	Profile    Section = "profile"
	Experience Section = "experience"
	Projects   Section = "projects"
	Education  Section = "education"
)

var ErrUnknownSection = errors.New("unknown section")

// All lists the sections in sidebar order.
func All() []Section {
	return []Section{Profile, Experience, Projects, Education}
}

func Parse(s string) (Section, error) {
	switch Section(s) {
	case Profile, Experience, Projects, Education:
		return Section(s), nil
	}
	return "", ErrUnknownSection
}

func (s Section) Label() string {
	switch s {
	case Profile:
		return "Profile"
	case Experience:
		return "Experience"
	case Projects:
		return "Projects"
	case Education:
		return "Education"
	}
	return string(s)
}

// Collection names the keyed lists that editors replace.
type Collection string

const (
	CollectionExperiences    Collection = "experiences"
	CollectionProjects       Collection = "projects"
	CollectionEducation      Collection = "education"
	CollectionCertifications Collection = "certifications"
	CollectionProfile        Collection = "profile"
)
