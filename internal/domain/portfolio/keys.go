package portfolio

import "github.com/khoahotran/portfolio-cms/internal/domain/editor"

// Key sets wire each collection entity into the generic editor.

var ExperienceKeys = editor.Keys[Experience]{
	ID:     func(e Experience) int { return e.ID },
	WithID: func(e Experience, id int) Experience { e.ID = id; return e },
	Blank:  func() Experience { return Experience{Achievements: []string{}} },
	Clone:  Experience.Clone,
}

var ProjectKeys = editor.Keys[Project]{
	ID:     func(p Project) int { return p.ID },
	WithID: func(p Project, id int) Project { p.ID = id; return p },
	Blank:  func() Project { return Project{Technologies: []string{}} },
	Clone:  Project.Clone,
}

var EducationKeys = editor.Keys[Education]{
	ID:     func(e Education) int { return e.ID },
	WithID: func(e Education, id int) Education { e.ID = id; return e },
	Blank:  func() Education { return Education{} },
	Clone:  func(e Education) Education { return e },
}

var CertificationKeys = editor.Keys[Certification]{
	ID:     func(c Certification) int { return c.ID },
	WithID: func(c Certification, id int) Certification { c.ID = id; return c },
	Blank:  func() Certification { return Certification{} },
	Clone:  func(c Certification) Certification { return c },
}

// List-valued fields editable through add/remove item actions.

var AchievementsField = editor.ListField[Experience]{
	Name: "achievements",
	Get:  func(e Experience) []string { return e.Achievements },
	Set:  func(e Experience, v []string) Experience { e.Achievements = v; return e },
}

var TechnologiesField = editor.ListField[Project]{
	Name:   "technologies",
	Get:    func(p Project) []string { return p.Technologies },
	Set:    func(p Project, v []string) Project { p.Technologies = v; return p },
	Unique: true,
}

var SkillsField = editor.ListField[Profile]{
	Name: "skills",
	Get:  func(p Profile) []string { return p.Skills },
	Set:  func(p Profile, v []string) Profile { p.Skills = v; return p },
}

// ProfileID is the fixed key of the singleton profile record.
const ProfileID = 1

// ProfileKeys treats the profile as a one-element collection.
var ProfileKeys = editor.Keys[Profile]{
	ID:     func(Profile) int { return ProfileID },
	WithID: func(p Profile, _ int) Profile { return p },
	Blank:  func() Profile { return Profile{Skills: []string{}} },
	Clone:  Profile.Clone,
}
