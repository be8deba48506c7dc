package pipeline

import "fmt"

// resumeJSONShape is the exact object shape the model is instructed to emit
const resumeJSONShape = `{
  "full_name": "string",
  "job_title": "string",
  "email": "string",
  "phone": "string",
  "location": "string",
  "summary": "string",
  "experience": [{"company": "string", "duration": "string", "description": "string"}],
  "projects": [{"name": "string", "description": "string", "link": "string"}],
  "education": [{"institution": "string", "duration": "string", "course": "string"}],
  "skills": ["string"],
  "certifications": ["string"]
}`

// fullResumeSystemPrompt is the strict-extraction contract: the model may
// only restate what the prompt contains, never invent content for fields the
// prompt does not mention
var fullResumeSystemPrompt = fmt.Sprintf(`You are a resume builder. Extract resume information from the user's text and return it as a JSON object.

Return a valid JSON object with exactly this shape:

%s

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text, no markdown, no explanation
2. Extract ONLY what is stated in the user's text - never fabricate content
3. Any field not mentioned by the user must be an empty string "" or empty array []
4. Every field must be present in the output, even when empty
5. Keep descriptions concise and professional`, resumeJSONShape)

// arrayResumeSystemPrompt is the gap-filling variant: unmentioned non-identity
// sections get realistic placeholder content, but identity fields are never
// invented
var arrayResumeSystemPrompt = fmt.Sprintf(`You are a resume builder. Build a complete resume from the user's text and return it as a JSON array containing exactly one resume object.

Return a valid JSON array of one object with exactly this shape:

[%s]

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text, no markdown, no explanation
2. Never fabricate identity fields: full_name, email and phone stay empty strings unless stated by the user
3. Fill unmentioned non-identity sections with realistic, professional placeholder content
4. Always populate the summary
5. Every field must be present in the output, even when empty`, resumeJSONShape)

// sectionSystemPrompt builds the single-section edit contract
func sectionSystemPrompt(section string) string {
	return fmt.Sprintf(`You are a resume editor. The user will provide their current resume as JSON, followed by an edit instruction.

Modify ONLY the %q section of the resume according to the instruction.

Respond with exactly this JSON object and nothing else:

{"%s": <updated value>}

No markdown, no code fences, no commentary.`, section, section)
}
