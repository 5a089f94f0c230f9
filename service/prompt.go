package service

import (
	"strings"
	"text/template"
)

// PromptTemplate is a prompt with named interpolation slots, so prompt
// variants stay testable instead of being assembled ad hoc.
type PromptTemplate struct {
	tmpl *template.Template
}

func NewPromptTemplate(name, text string) *PromptTemplate {
	return &PromptTemplate{
		tmpl: template.Must(template.New(name).Parse(text)),
	}
}

func (p *PromptTemplate) Render(data any) (string, error) {
	var sb strings.Builder
	if err := p.tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type answerPromptData struct {
	Context  string
	Question string
}

type titlePromptData struct {
	Question string
}

const answerPromptText = `You are a friendly and professional AI assistant with a knack for making conversations engaging and fun. Your task is to answer the user's question based on the given context from PDF documents. Respond in a conversational tone, focusing on the user's query, and present the information in a structured format with section headers and bullet points for clarity. Keep the tone professional yet light-hearted, adding a touch of personality to make the interaction enjoyable. Avoid using formatting symbols like asterisks or hashtags.

Context: {{.Context}}
Question: {{.Question}}
Instructions:
- Directly address the user's question with a relevant and concise answer.
- Structure the response with section headers in the format "Section: [Section Name]" (e.g., "Section: Education", "Section: Experience") followed by bullet points for that section.
- Use bullet points (starting with "-") to list key details under each section.
- Maintain a professional tone but add a friendly, engaging vibe (e.g., "Hey there!", "Pretty cool, right?").
- If the question is specific, focus on that topic (e.g., if asked about certificates, highlight only the certificates).
- If the question is broad, provide a brief summary with relevant sections (e.g., Education, Experience, Skills).
- End with a friendly closing statement (e.g., "Let me know if you'd like more details!").
- If the answer isn't clear from the context, let the user know in a friendly way and suggest next steps.`

const titlePromptText = `Generate a concise and descriptive chat title (max 20 characters) based on the following question: "{{.Question}}"`
