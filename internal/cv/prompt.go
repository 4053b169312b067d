package cv

// DefaultPrompt is the built-in extraction prompt. Operators can override it
// with a template file; the template must carry exactly one %s placeholder
// for the resume text.
const DefaultPrompt = `You are an expert resume parser. Extract structured information from this resume.

Resume text:
"""
%s
"""

Return ONLY valid JSON (no markdown, no explanation) with this exact structure:
{
  "user_info": {
    "first_name": "",
    "last_name": "",
    "email": "",
    "phone_number": "",
    "linkedin_profile": "",
    "address": "",
    "summary": ""
  },
  "skills": {
    "soft_skills": ["..."],
    "hard_skills": ["..."]
  },
  "relevant_work_experience": [
    {
      "title": "",
      "company": "",
      "start_date": "",
      "end_date": "",
      "description": "",
      "location": ""
    }
  ],
  "education": [
    {
      "title": "",
      "institution": "",
      "type": "degree",
      "start_date": "",
      "end_date": "",
      "notes": ""
    }
  ],
  "languages": [
    {
      "language": "",
      "level": "",
      "notes": ""
    }
  ]
}

Important:
- Copy values from the resume verbatim; never invent missing data
- Leave out sections the resume does not have rather than returning empty objects
- Keep dates exactly as written in the resume, including language and format
- An open-ended position has an empty end_date
- For education, "type" is "degree" or "certification"`
