package content

// Section ids rendered by the page, in document order.
const (
	SectionHome         = "home"
	SectionAbout        = "about"
	SectionSkills       = "skills"
	SectionProjects     = "projects"
	SectionAchievements = "achievements"
	SectionContact      = "contact"
)

// SectionIDs lists every section the page renders, in document order.
var SectionIDs = []string{
	SectionHome,
	SectionAbout,
	SectionSkills,
	SectionProjects,
	SectionAchievements,
	SectionContact,
}

// Content is everything a portfolio page shows.
type Content struct {
	Owner        Owner             `koanf:"owner" yaml:"owner"`
	Nav          []NavItem         `koanf:"nav" yaml:"nav"`
	Stats        []Stat            `koanf:"stats" yaml:"stats"`
	About        string            `koanf:"about" yaml:"about"`
	Skills       []SkillCategory   `koanf:"skills" yaml:"skills"`
	Projects     []Project         `koanf:"projects" yaml:"projects"`
	Achievements []Achievement     `koanf:"achievements" yaml:"achievements"`
	Contact      Contact           `koanf:"contact" yaml:"contact"`
	Meta         map[string]string `koanf:"meta" yaml:"meta,omitempty"`
}

// Owner describes the person the portfolio belongs to.
type Owner struct {
	Name    string `koanf:"name" yaml:"name"`
	Title   string `koanf:"title" yaml:"title"`
	Tagline string `koanf:"tagline" yaml:"tagline"`
}

// NavItem links the navigation bar to a page section.
type NavItem struct {
	Section string `koanf:"section" yaml:"section"`
	Label   string `koanf:"label" yaml:"label"`
}

// Href returns the in-page link to the item's section.
func (n NavItem) Href() string { return "#" + n.Section }

// Stat is a hero figure such as "50+ Projects". Values ending in "+"
// are animated by the stats counter.
type Stat struct {
	Value string `koanf:"value" yaml:"value"`
	Label string `koanf:"label" yaml:"label"`
}

// SkillCategory groups related skills under an icon.
type SkillCategory struct {
	Title string   `koanf:"title" yaml:"title"`
	Icon  string   `koanf:"icon" yaml:"icon"`
	Items []string `koanf:"items" yaml:"items"`
}

// Project is one portfolio project card.
type Project struct {
	Title       string   `koanf:"title" yaml:"title"`
	Description string   `koanf:"description" yaml:"description"`
	Tags        []string `koanf:"tags" yaml:"tags"`
	URL         string   `koanf:"url" yaml:"url,omitempty"`
}

// Achievement is one entry of the achievements list.
type Achievement struct {
	Title       string `koanf:"title" yaml:"title"`
	Description string `koanf:"description" yaml:"description"`
	Year        string `koanf:"year" yaml:"year,omitempty"`
}

// Contact lists the ways to reach the owner.
type Contact struct {
	Intro    string `koanf:"intro" yaml:"intro"`
	Email    string `koanf:"email" yaml:"email"`
	Location string `koanf:"location" yaml:"location,omitempty"`
	Links    []Link `koanf:"links" yaml:"links,omitempty"`
}

// Link is an external profile link.
type Link struct {
	Label string `koanf:"label" yaml:"label"`
	URL   string `koanf:"url" yaml:"url"`
}
