package softskill

// Skill order is fixed so the questionnaire renders consistently.
var SkillOrder = []string{
	"Teamwork",
	"Problem Solving",
	"Communication",
	"Adaptability",
	"Critical Thinking",
	"Time Management",
	"Interpersonal",
}

// Question pairs the full prompt shown to the user with its input hint.
type Question struct {
	Skill       string `json:"skill"`
	Question    string `json:"question"`
	Placeholder string `json:"placeholder"`
}

var questions = map[string]Question{
	"Teamwork": {
		Skill:       "Teamwork",
		Question:    "Please rate your teamwork skills from 1 to 5 and provide a brief example of a team project you have worked on.",
		Placeholder: "Rate from 1 to 5, and describe a team project",
	},
	"Problem Solving": {
		Skill:       "Problem Solving",
		Question:    "Please rate your problem-solving skills from 1 to 5 and describe a situation where you solved a difficult problem.",
		Placeholder: "Rate from 1 to 5, and describe a problem-solving situation",
	},
	"Communication": {
		Skill:       "Communication",
		Question:    "Please rate your communication skills from 1 to 5 and share an experience where effective communication was crucial.",
		Placeholder: "Rate from 1 to 5, and describe a communication experience",
	},
	"Adaptability": {
		Skill:       "Adaptability",
		Question:    "Please rate your adaptability from 1 to 5 and give an example of how you adapted to a new situation.",
		Placeholder: "Rate from 1 to 5, and describe an adaptable situation",
	},
	"Critical Thinking": {
		Skill:       "Critical Thinking",
		Question:    "Please rate your critical thinking skills from 1 to 5 and provide an example of a time you used critical thinking.",
		Placeholder: "Rate from 1 to 5, and describe a critical thinking example",
	},
	"Time Management": {
		Skill:       "Time Management",
		Question:    "Please rate your time management skills from 1 to 5 and describe how you manage your time effectively.",
		Placeholder: "Rate from 1 to 5, and describe time management strategies",
	},
	"Interpersonal": {
		Skill:       "Interpersonal",
		Question:    "Please rate your interpersonal skills from 1 to 5 and share an example of how you interact with others in a professional setting.",
		Placeholder: "Rate from 1 to 5, and describe an interpersonal interaction",
	},
}

// descriptions explain why each skill matters; shown alongside resources
// for skills rated below the improvement threshold.
var descriptions = map[string]string{
	"Teamwork":          "Teamwork is crucial for achieving collective goals, enhancing productivity, and fostering a collaborative environment.",
	"Problem Solving":   "Problem-solving skills enable individuals to effectively tackle challenges and find innovative solutions.",
	"Communication":     "Effective communication is essential for sharing information, building relationships, and ensuring clarity.",
	"Adaptability":      "Adaptability helps individuals adjust to new circumstances, remain flexible, and thrive in changing environments.",
	"Critical Thinking": "Critical thinking involves analyzing situations, making informed decisions, and solving problems logically.",
	"Time Management":   "Time management skills help prioritize tasks, meet deadlines, and maintain a healthy work-life balance.",
	"Interpersonal":     "Interpersonal skills facilitate positive interactions, teamwork, and collaboration in professional settings.",
}

var resources = map[string][]string{
	"Teamwork": {
		"https://www.youtube.com/watch?v=D3KJufY9r4I",
		"https://www.thebalancecareers.com/importance-of-teamwork-1918016",
	},
	"Problem Solving": {
		"https://www.youtube.com/watch?v=hiqoCvPs_Jc",
		"https://www.mindtools.com/pages/article/newHTE_00.htm",
	},
	"Communication": {
		"https://www.youtube.com/watch?v=3ML_uBKpD6Y",
		"https://www.skillsyouneed.com/ips/communication-skills.html",
	},
	"Adaptability": {
		"https://www.youtube.com/watch?v=G3DUzXGkzyM",
		"https://www.indeed.com/career-advice/career-development/adaptability-skills",
	},
	"Critical Thinking": {
		"https://www.youtube.com/watch?v=c6IyuI8TT54",
		"https://www.verywellmind.com/what-is-critical-thinking-2794963",
	},
	"Time Management": {
		"https://www.youtube.com/watch?v=WXBA4eWskrc",
		"https://www.thebalancecareers.com/time-management-tips-1918537",
	},
	"Interpersonal": {
		"https://www.youtube.com/watch?v=6Gp2x-Q6jc8",
		"https://dharwad.kvs.ac.in/sites/default/files/VRK%2C%20LIFE%20SKILLS.pdf",
	},
}
