package content

// Default returns a complete sample portfolio.
func Default() Content {
	return Content{
		Owner: Owner{
			Name:    "Alex Morgan",
			Title:   "Full-Stack Engineer",
			Tagline: "I build fast, reliable web products and the systems behind them.",
		},
		Nav: []NavItem{
			{Section: SectionHome, Label: "Home"},
			{Section: SectionAbout, Label: "About"},
			{Section: SectionSkills, Label: "Skills"},
			{Section: SectionProjects, Label: "Projects"},
			{Section: SectionAchievements, Label: "Achievements"},
			{Section: SectionContact, Label: "Contact"},
		},
		Stats: []Stat{
			{Value: "50+", Label: "Projects"},
			{Value: "8+", Label: "Years"},
			{Value: "30+", Label: "Clients"},
		},
		About: "I am a **full-stack engineer** who enjoys turning rough ideas into\n" +
			"dependable software.\n\n" +
			"Most of my work sits where *product* meets *infrastructure*: APIs,\n" +
			"real-time interfaces and the tooling that keeps them running.",
		Skills: []SkillCategory{
			{Title: "Backend", Icon: "⚙️", Items: []string{"Go", "PostgreSQL", "Redis", "gRPC"}},
			{Title: "Frontend", Icon: "🎨", Items: []string{"TypeScript", "HTML & CSS", "Accessibility"}},
			{Title: "Infrastructure", Icon: "☁️", Items: []string{"AWS", "Kubernetes", "Terraform"}},
		},
		Projects: []Project{
			{
				Title:       "Realtime Dashboard",
				Description: "Live operational metrics streamed to thousands of browsers.",
				Tags:        []string{"Go", "WebSocket", "Prometheus"},
			},
			{
				Title:       "Static Site Publisher",
				Description: "One command from Markdown to a CDN-backed bucket.",
				Tags:        []string{"Go", "S3", "CLI"},
			},
			{
				Title:       "Booking Platform",
				Description: "Scheduling backend serving a dozen partner clinics.",
				Tags:        []string{"PostgreSQL", "gRPC"},
			},
		},
		Achievements: []Achievement{
			{Title: "Conference Speaker", Description: "Talk on server-driven interfaces.", Year: "2024"},
			{Title: "Open Source Maintainer", Description: "Maintainer of a popular Go routing library.", Year: "2022"},
			{Title: "Hackathon Winner", Description: "First place, city-wide civic tech hackathon.", Year: "2019"},
		},
		Contact: Contact{
			Intro:    "Have a project in mind or just want to say hello? Send me a message.",
			Email:    "alex@example.com",
			Location: "Lisbon, Portugal",
			Links: []Link{
				{Label: "GitHub", URL: "https://github.com/example"},
				{Label: "LinkedIn", URL: "https://www.linkedin.com/in/example"},
			},
		},
	}
}
