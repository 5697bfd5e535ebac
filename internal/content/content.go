// Package content holds the site copy served to the front end.
package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Social struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Dribbble string `json:"dribbble"`
	Twitter  string `json:"twitter"`
}

type Contact struct {
	Email        string `json:"email"`
	Location     string `json:"location"`
	WorkingHours string `json:"workingHours"`
	Social       Social `json:"social"`
}

type Button struct {
	Text    string `json:"text"`
	URL     string `json:"url"`
	Primary bool   `json:"primary"`
}

type Hero struct {
	FirstLine   string   `json:"firstLine"`
	SecondLine  string   `json:"secondLine"`
	Description string   `json:"description"`
	Buttons     []Button `json:"buttons"`
}

type Skill struct {
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Site is everything the front end renders outside the dynamic widgets.
type Site struct {
	Name        string    `json:"siteName"`
	Description string    `json:"siteDescription"`
	Contact     Contact   `json:"contact"`
	Hero        Hero      `json:"hero"`
	Skills      []Skill   `json:"skills"`
	Projects    []Project `json:"projects"`
}

// Default is the copy shipped with the site.
var Default = Site{
	Name:        "Multi-Skilled Portfolio",
	Description: "Portfolio showcasing 3D modeling, CG generalism, Python development, and Adobe Suite design skills",
	Contact: Contact{
		Email:        "starum3d@gmail.com",
		Location:     "Belgrade, Serbia/Remote",
		WorkingHours: "Monday - Friday: 11AM - 7PM",
		Social: Social{
			GitHub:   "https://github.com/StarumDDD",
			LinkedIn: "https://www.linkedin.com/in/ilia-sirotkin-829b2227a/",
			Dribbble: "https://dribbble.com",
			Twitter:  "https://x.com/Starum_DD",
		},
	},
	Hero: Hero{
		FirstLine:   "Multi-Skilled",
		SecondLine:  "Creative Developer",
		Description: "Blending 3D modeling, CG generalism, backend Python development, and Adobe Suite design skills to create engaging digital experiences.",
		Buttons: []Button{
			{Text: "View Projects", URL: "/projects", Primary: true},
			{Text: "Contact Me", URL: "/contact"},
		},
	},
	Skills: []Skill{
		{Title: "3D Modeling", Icon: "cube", Description: "Creating detailed 3D models and scenes with precision and artistic flair."},
		{Title: "CG Generalism", Icon: "image", Description: "Mastering the full CG pipeline from modeling to lighting, texturing, and rendering."},
		{Title: "Python Development", Icon: "code", Description: "Building robust backend systems, data processing tools, and automation scripts."},
		{Title: "UI/UX Design", Icon: "paint", Description: "Creating intuitive, attractive interfaces with Adobe Suite for exceptional user experiences."},
	},
	Projects: []Project{
		{
			Title:       "Text Analyzer",
			Description: "A small text analysis API that counts words, characters and sentences and ranks the most significant words.",
			Tags:        []string{"Go", "API"},
		},
		{
			Title:       "3D Model Viewer",
			Description: "WebGL-based 3D model viewer for the web.",
			Tags:        []string{"WebGL", "JavaScript"},
		},
	},
}

// Handler serves site as JSON.
func Handler(site Site) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, site)
	}
}
