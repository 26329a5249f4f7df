package gemini

import (
	"context"
	"fmt"
	"strings"
)

type Opportunity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Recommendations struct {
	Courses      []Opportunity `json:"courses"`
	Competitions []Opportunity `json:"competitions"`
	Projects     []Opportunity `json:"projects"`
}

type RoadmapStage struct {
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Pathway struct {
	Roadmap           []RoadmapStage `json:"roadmap"`
	LearningResources []Opportunity  `json:"learningResources"`
	ProjectMilestones []Milestone    `json:"projectMilestones"`
	PeerFinderMessage string         `json:"peerFinderMessage"`
}

// ExtractSkills pulls 3-5 skill tags from an achievement's title and
// description.
func (c *Client) ExtractSkills(ctx context.Context, title, description string) ([]string, error) {
	prompt := fmt.Sprintf(`From the following text, extract a list of 3-5 key skills. `+
		`Return the skills as a JSON array of strings. For example: ["React", "Project Management", "Public Speaking"]. `+
		`Text: "Title: %s. Description: %s"`, title, description)

	var skills []string
	if err := c.GenerateJSON(ctx, Request{Prompt: prompt}, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// DescribeCertificate writes a short portfolio description from a certificate
// image.
func (c *Client) DescribeCertificate(ctx context.Context, title, imageMIME string, imageData []byte) (string, error) {
	prompt := fmt.Sprintf(`Analyze the certificate image for an achievement titled %q. `+
		`Based *only* on the image, write a professional, concise (2-3 sentences) description `+
		`for a student's portfolio. Highlight the skills gained.`, title)

	text, err := c.Generate(ctx, Request{
		Prompt:    prompt,
		ImageMIME: imageMIME,
		ImageData: imageData,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// RecommendOpportunities suggests courses, competitions and project ideas for
// a student's skill profile, using search grounding for live competitions.
func (c *Client) RecommendOpportunities(ctx context.Context, skills []string, year, department string) (*Recommendations, error) {
	prompt := fmt.Sprintf(`Based on the skills [%s], suggest relevant learning opportunities for a %s %s student.

Your response must be a valid JSON object with three keys: "courses", "competitions", and "projects".

- "courses": Provide 2 relevant online courses.
- "competitions": Use Google Search to find 2 famous, currently active or upcoming hackathons or coding competitions relevant to the student's skills. Prioritize platforms like Unstop, Devfolio, Hack2Skill, Major League Hacking (MLH), and official Google or Microsoft events. For each, include the platform name in the description.
- "projects": Provide 1 interesting project idea.

Each key ("courses", "competitions", "projects") should be an array of objects, where each object has "title", "description", and "link" properties. Ensure all links are valid URLs.`,
		strings.Join(skills, ", "), year, department)

	var recs Recommendations
	if err := c.GenerateJSON(ctx, Request{Prompt: prompt, UseSearch: true}, &recs); err != nil {
		return nil, err
	}
	return &recs, nil
}

// CareerPathway generates a step-by-step roadmap toward a stated career goal,
// including a ready-to-post teammate finder message.
func (c *Client) CareerPathway(ctx context.Context, skills []string, year, department, goal string) (*Pathway, error) {
	lowered := make([]string, len(skills))
	for i, s := range skills {
		lowered[i] = strings.ToLower(s)
	}

	prompt := fmt.Sprintf(`I am a %s %s student with existing skills in [%s]. My career goal is to become a %q.

Generate a detailed, step-by-step roadmap for me. The response must be a valid JSON object with the following keys: "roadmap", "learningResources", "projectMilestones", and "peerFinderMessage".

- "roadmap": An array of objects, where each object represents a stage (e.g., "Fundamentals", "Advanced Topics"). Each stage object must have a "title" (string) and a "topics" (array of strings) property. The topics should be specific skills or technologies.
- "learningResources": An array of 2 objects, each representing a specific online course with "title", "description", and "link" properties.
- "projectMilestones": An array of 2 objects, each a mini-project idea with "title" and "description" properties.
- "peerFinderMessage": A short, compelling message (as a string) that I can use to find teammates based on my goal.

Use Google Search for real-time, relevant information. Ensure the entire output is a single, valid JSON object.`,
		year, department, strings.Join(lowered, ", "), goal)

	var pathway Pathway
	if err := c.GenerateJSON(ctx, Request{Prompt: prompt, UseSearch: true}, &pathway); err != nil {
		return nil, err
	}
	return &pathway, nil
}

// ComposeReport writes a progress report or recommendation letter from a
// student's verified achievements.
func (c *Client) ComposeReport(ctx context.Context, reportType, studentName, department string, achievements []string) (string, error) {
	summary := strings.Join(achievements, "\n")

	prompt := fmt.Sprintf(`You are an academic advisor. Generate a professional document for a student named %s.`, studentName)
	if reportType == "recommendation" {
		prompt += fmt.Sprintf(` Create a strong, positive letter of recommendation. Highlight the student's skills and dedication as evidenced by these achievements:

%s

Structure it as a formal letter from a faculty member of the %s department.`, summary, department)
	} else {
		prompt += fmt.Sprintf(` Create a concise progress report summarizing the student's key accomplishments based on the following verified achievements:

%s

Conclude with a positive, encouraging remark.`, summary)
	}

	text, err := c.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
