package usecase

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
)

const helloPrompt = "Reply with one short sentence confirming you are online."

var resumeExtractionPrompt = fmt.Sprintf(`Analyze this resume and extract the key information as a single JSON object with exactly these keys: %s.
Use null for anything the resume does not mention. Return only the JSON object.`,
	strings.Join(dto.FieldNames, ", "))

func analysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a senior career coach and resume reviewer. Review the resume below and give structured, detailed feedback that helps the candidate improve its clarity, impact and fit for the target role.

Evaluate:
1. Structure and readability: logical order, clear and consistent section headings.
2. Professional summary: career goal, value proposition and core strengths in a few sentences.
3. Skills relevance: fit for the target role, missing in-demand skills.
4. Experience impact: action-oriented, quantified achievements showing progression or business value.
5. ATS optimization: keywords an applicant tracking system would look for, and which ones to add.
6. Grammar, style and tone: spelling or tone problems and how to sound more professional.
7. Visual formatting: clean, scannable layout with sensible use of bullets and white space.
8. Tailoring: how well the resume matches the target job description and what to customize.

Resume text:
%s

Target job description:
%s

Respond with these sections:
- Strengths Summary
- Section-by-Section Analysis
- ATS Readiness Score (/100)
- Improvement Recommendations
- Rewritten Bullet Examples (if applicable)
- Final Verdict: Ready / Needs Work / Major Revision`, resumeText, jobDescription)
}

func atsPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You simulate an applicant tracking system. Compare the resume's skills, experience, projects, education and keywords with the job description and score how well they match from 0 to 100.

Resume text:
%s

Job description:
%s

Return only JSON in this form:
{"ats_score": 85}`, resumeText, jobDescription)
}

type CoverLetterInput struct {
	ResumeText        string
	JobDescription    string
	CompanyName       string
	HiringManagerName string
	DesiredTone       string
}

func coverLetterPrompt(in CoverLetterInput) string {
	manager := in.HiringManagerName
	if manager == "" {
		manager = "Not provided (address the letter to the hiring team)"
	}
	return fmt.Sprintf(`You are a career coach and copywriter. Write a personalized cover letter for the candidate below that highlights the experience most relevant to the role and makes the case for an interview.

Resume text:
%s

Job description:
%s

Company: %s
Hiring manager: %s
Tone: %s

Rules:
- Start with a header holding the candidate's full name, phone, email and any professional links taken from the resume, then today's date, the hiring manager and the company.
- Tailor every paragraph to the job description; avoid generic statements.
- Keep it to at most one page: an opening, two or three body paragraphs and a closing with a call to action.
- Return only the letter text.`, in.ResumeText, in.JobDescription, in.CompanyName, manager, in.DesiredTone)
}
