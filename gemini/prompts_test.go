package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capturePrompt(t *testing.T, reply string) (*Client, *generateRequest) {
	t.Helper()
	var captured generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, reply)
	})
	return c, &captured
}

func TestExtractSkillsParsesArray(t *testing.T) {
	c, captured := capturePrompt(t, geminiReply(`Here you go: ["Go", "MongoDB", "Leadership"]`))

	skills, err := c.ExtractSkills(context.Background(), "Hackathon Winner", "Built a Go backend in 24 hours")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "MongoDB", "Leadership"}, skills)

	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "Hackathon Winner")
	assert.Contains(t, prompt, "3-5 key skills")
	assert.Empty(t, captured.Tools)
}

func TestDescribeCertificateSendsImage(t *testing.T) {
	c, captured := capturePrompt(t, geminiReply("  A concise description.  "))

	text, err := c.DescribeCertificate(context.Background(), "AWS Certification", "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, "A concise description.", text)

	require.Len(t, captured.Contents[0].Parts, 2)
	require.NotNil(t, captured.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", captured.Contents[0].Parts[1].InlineData.MIMEType)
}

func TestRecommendOpportunitiesUsesSearch(t *testing.T) {
	reply := geminiReply(`{"courses":[{"title":"Go 101","description":"Intro","link":"https://example.com"}],"competitions":[],"projects":[]}`)
	c, captured := capturePrompt(t, reply)

	recs, err := c.RecommendOpportunities(context.Background(), []string{"Go", "Docker"}, "3rd year", "CSE")
	require.NoError(t, err)
	require.Len(t, recs.Courses, 1)
	assert.Equal(t, "Go 101", recs.Courses[0].Title)

	assert.Len(t, captured.Tools, 1)
	assert.Contains(t, captured.Contents[0].Parts[0].Text, "Go, Docker")
}

func TestCareerPathwayLowercasesSkills(t *testing.T) {
	reply := geminiReply(`{"roadmap":[{"title":"Fundamentals","topics":["Linux"]}],"learningResources":[],"projectMilestones":[],"peerFinderMessage":"Join me!"}`)
	c, captured := capturePrompt(t, reply)

	pathway, err := c.CareerPathway(context.Background(), []string{"Go", "Kubernetes"}, "3rd year", "CSE", "SRE")
	require.NoError(t, err)
	assert.Equal(t, "Join me!", pathway.PeerFinderMessage)
	require.Len(t, pathway.Roadmap, 1)
	assert.Equal(t, "Fundamentals", pathway.Roadmap[0].Title)

	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "go, kubernetes")
	assert.Len(t, captured.Tools, 1)
}

func TestComposeReportVariants(t *testing.T) {
	achievements := []string{"- Hackathon Winner (May 10, 2025): first place"}

	c, captured := capturePrompt(t, geminiReply("Dear committee, ..."))
	_, err := c.ComposeReport(context.Background(), "recommendation", "Arun", "CSE", achievements)
	require.NoError(t, err)
	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "letter of recommendation")
	assert.Contains(t, prompt, "CSE department")
	assert.Contains(t, prompt, "Hackathon Winner")

	c, captured = capturePrompt(t, geminiReply("Progress has been strong."))
	_, err = c.ComposeReport(context.Background(), "progress", "Arun", "CSE", achievements)
	require.NoError(t, err)
	prompt = captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "progress report")
	assert.NotContains(t, prompt, "letter of recommendation")
}
