package site

import (
	"github.com/vango-dev/folio/pkg/content"
	"github.com/vango-dev/folio/pkg/page"
	. "github.com/vango-dev/folio/pkg/vdom"
)

// Build builds the page body for c.
func Build(c content.Content) (*VNode, error) {
	about, err := content.RenderMarkdown(c.About)
	if err != nil {
		return nil, err
	}

	return Body(
		navbar(c),
		Main(
			hero(c),
			aboutSection(about),
			skillsSection(c.Skills),
			projectsSection(c.Projects),
			achievementsSection(c.Achievements),
			contactSection(c.Contact),
		),
		Footer(Class("footer"),
			Div(Class("container"),
				P(Textf("© %s. All rights reserved.", c.Owner.Name)),
			),
		),
	), nil
}

func navbar(c content.Content) *VNode {
	return Nav(Class("navbar"),
		Div(Class("nav-container"),
			A(Class("nav-logo"), Href("#"+content.SectionHome), c.Owner.Name),
			Ul(ID("nav-menu"), Class("nav-menu"),
				Range(c.Nav, func(item content.NavItem, _ int) *VNode {
					return Li(A(Class("nav-link"), Href(item.Href()), item.Label))
				}),
			),
			Div(ID("nav-toggle"), Class("hamburger"), Role("button"), AriaLabel("Toggle navigation"),
				Span(Class("bar")),
				Span(Class("bar")),
				Span(Class("bar")),
			),
		),
	)
}

func hero(c content.Content) *VNode {
	return Section(ID(content.SectionHome), Class("hero"),
		Div(Class("hero-content", "container"),
			H1(Class("hero-title"), c.Owner.Name),
			P(Class("hero-subtitle"), c.Owner.Title),
			P(Class("hero-tagline"), c.Owner.Tagline),
			Div(Class("hero-buttons"),
				Button(ID("view-work-btn"), Class("btn", "btn--primary"), TypeAttr("button"), "View My Work"),
				Button(ID("get-in-touch-btn"), Class("btn", "btn--outline"), TypeAttr("button"), "Get In Touch"),
			),
			If(len(c.Stats) > 0, Div(Class("hero-stats"),
				Range(c.Stats, func(s content.Stat, _ int) *VNode {
					return Div(Class("stat"),
						Span(Class("stat-value"), s.Value),
						Span(Class("stat-label"), s.Label),
					)
				}),
			)),
		),
	)
}

func sectionTitle(title string) *VNode {
	return H2(Class("section-title"), title)
}

func aboutSection(about []*VNode) *VNode {
	return Section(ID(content.SectionAbout), Class("section", "about"),
		Div(Class("container"),
			sectionTitle("About Me"),
			Div(Class("about-text"), about),
		),
	)
}

func skillsSection(skills []content.SkillCategory) *VNode {
	return Section(ID(content.SectionSkills), Class("section", "skills"),
		Div(Class("container"),
			sectionTitle("Skills"),
			Div(Class("skills-grid"),
				Range(skills, func(s content.SkillCategory, _ int) *VNode {
					return Div(Class("skill-category"),
						Div(Class("skill-icon"), s.Icon),
						H3(s.Title),
						Ul(Class("skill-list"),
							Range(s.Items, func(item string, _ int) *VNode {
								return Li(item)
							}),
						),
					)
				}),
			),
		),
	)
}

func projectsSection(projects []content.Project) *VNode {
	return Section(ID(content.SectionProjects), Class("section", "projects"),
		Div(Class("container"),
			sectionTitle("Projects"),
			Div(Class("projects-grid"),
				Range(projects, func(p content.Project, _ int) *VNode {
					return Article(Class("project-card"),
						H3(Class("project-title"), p.Title),
						P(Class("project-description"), p.Description),
						Div(Class("project-tags"),
							Range(p.Tags, func(tag string, _ int) *VNode {
								return Span(Class("tag"), tag)
							}),
						),
						If(p.URL != "", A(Class("project-link"), Href(p.URL), Target("_blank"), Rel("noopener"), "View project")),
					)
				}),
			),
		),
	)
}

func achievementsSection(items []content.Achievement) *VNode {
	return Section(ID(content.SectionAchievements), Class("section", "achievements"),
		Div(Class("container"),
			sectionTitle("Achievements"),
			Div(Class("achievements-list"),
				Range(items, func(a content.Achievement, _ int) *VNode {
					return Div(Class("achievement-item"),
						If(a.Year != "", Span(Class("achievement-year"), a.Year)),
						H3(a.Title),
						P(a.Description),
					)
				}),
			),
		),
	)
}

func contactSection(c content.Contact) *VNode {
	return Section(ID(content.SectionContact), Class("section", "contact"),
		Div(Class("container"),
			sectionTitle("Get In Touch"),
			Div(Class("contact-content"),
				Div(Class("contact-info"),
					P(c.Intro),
					P(Strong("Email: "), A(Href("mailto:"+c.Email), c.Email)),
					If(c.Location != "", P(Strong("Location: "), c.Location)),
					If(len(c.Links) > 0, Ul(Class("contact-links"),
						Range(c.Links, func(l content.Link, _ int) *VNode {
							return Li(A(Href(l.URL), Target("_blank"), Rel("noopener"), l.Label))
						}),
					)),
				),
				contactForm(),
			),
		),
	)
}

func contactForm() *VNode {
	field := func(id, label string, control *VNode) *VNode {
		return Div(Class("form-group"),
			Label(For(id), Class("form-label"), label),
			control,
		)
	}
	return Form(ID("contact-form"), Class("contact-form"), Attribute("novalidate", true),
		field("name", "Name", Input(ID("name"), NameAttr("name"), TypeAttr("text"), MaxLength(page.MaxNameLength), Class("form-control"))),
		field("email", "Email", Input(ID("email"), NameAttr("email"), TypeAttr("email"), MaxLength(page.MaxEmailLength), Class("form-control"))),
		field("message", "Message", Textarea(ID("message"), NameAttr("message"), Rows(5), MaxLength(page.MaxMessageLength), Class("form-control"))),
		Button(ID("submit-btn"), Class("btn", "btn--primary", "btn--full-width"), TypeAttr("submit"), "Send Message"),
	)
}
