package services

// Data tables used by the fact extractor. These are deliberately kept as
// plain data so new skills or industries can be added without touching the
// matching logic.

// universalSkills spans every supported professional domain. Single-token
// entries are matched at word boundaries, multi-token entries as substrings.
var universalSkills = []string{
	// Technical / IT: programming
	"python", "javascript", "typescript", "java", "c++", "c#", "go", "rust",
	"ruby", "php", "swift", "kotlin", "scala", "r", "matlab", "sql",

	// AI / ML
	"machine learning", "deep learning", "neural networks", "nlp",
	"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn",
	"transformers", "llm", "rag", "langchain",

	// Web development
	"react", "vue", "angular", "node.js", "express", "fastapi", "django",
	"flask", "spring", "html", "css", "tailwind", "bootstrap",

	// Cloud & DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"jenkins", "ci/cd", "git", "github", "gitlab",

	// Databases
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"dynamodb", "firebase", "sqlite", "oracle",

	// Healthcare
	"patient care", "clinical documentation", "hipaa", "emr", "ehr",
	"medical terminology", "vital signs", "cpr", "bls", "acls",
	"patient assessment", "medication administration", "iv therapy",
	"wound care", "electronic health records", "medical coding",
	"icd-10", "healthcare compliance",

	// Marketing
	"seo", "google analytics", "content strategy", "social media marketing",
	"email marketing", "ppc", "google ads", "facebook ads", "hubspot",
	"marketing automation", "conversion optimization", "a/b testing",
	"content creation", "copywriting", "brand management", "crm",
	"salesforce", "market research",

	// Finance / accounting
	"financial modeling", "gaap", "ifrs", "financial analysis",
	"budgeting", "forecasting", "excel", "quickbooks", "sap",
	"accounts payable", "accounts receivable", "audit", "tax preparation",
	"risk assessment", "bloomberg terminal", "financial reporting",
	"variance analysis", "cost accounting", "cpa", "cfa",

	// Sales
	"lead generation", "cold calling", "relationship building",
	"negotiation", "sales pipeline", "quota achievement", "crm software",
	"b2b sales", "b2c sales", "account management", "upselling",
	"customer retention", "sales presentations",

	// Human resources
	"recruitment", "talent acquisition", "onboarding", "employee relations",
	"performance management", "hris", "workday", "adp", "payroll",
	"benefits administration", "training and development", "hr compliance",
	"labor law", "employee engagement", "compensation analysis",

	// Project management
	"agile", "scrum", "kanban", "waterfall", "project planning",
	"risk management", "stakeholder management", "budget management",
	"resource allocation", "jira", "confluence", "ms project",
	"pmp", "prince2", "gantt charts",

	// Design
	"adobe photoshop", "adobe illustrator", "figma", "sketch",
	"ui design", "ux design", "wireframing", "prototyping",
	"user research", "visual design", "graphic design", "branding",
	"typography", "color theory", "adobe xd",

	// Education
	"curriculum development", "lesson planning", "classroom management",
	"student assessment", "differentiated instruction", "educational technology",
	"learning management systems", "google classroom", "canvas",
	"special education", "tesol", "esl", "teaching certification",

	// Legal
	"contract law", "litigation", "legal research", "legal writing",
	"case management", "westlaw", "lexisnexis", "compliance",
	"corporate law", "intellectual property", "employment law",
	"regulatory compliance", "due diligence",

	// Manufacturing / engineering
	"autocad", "solidworks", "cad", "lean manufacturing", "six sigma",
	"quality control", "iso 9001", "osha", "process improvement",
	"supply chain", "inventory management", "plc programming",
	"cnc", "welding", "blueprint reading",

	// Universal soft skills
	"leadership", "communication", "problem solving", "teamwork",
	"time management", "critical thinking", "adaptability",
	"conflict resolution", "presentation skills", "analytical skills",
	"attention to detail", "customer service", "multitasking",
	"decision making", "collaboration", "interpersonal skills",
}

// educationKeywords flag lines that likely describe education history.
var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "university",
	"college", "bsc", "msc", "ba", "ma", "mba", "engineering",
	"diploma", "certification", "associate", "graduate",
	"a level", "a-level", "gcse", "school", "sixth form", "academy",
}

// industryCategory pairs a label with its representative keywords. The
// slice is ordered: ties between categories resolve to the earlier entry.
type industryCategory struct {
	name     string
	keywords []string
}

var industryCategories = []industryCategory{
	{"Software Engineering", []string{"python", "javascript", "react", "api", "git", "docker", "programming"}},
	{"Data Science/AI", []string{"machine learning", "tensorflow", "data analysis", "statistics", "data science"}},
	{"Healthcare", []string{"patient care", "clinical", "medical", "hipaa", "emr", "nursing", "healthcare"}},
	{"Marketing", []string{"seo", "marketing", "content", "social media", "google analytics", "campaign"}},
	{"Finance", []string{"financial", "accounting", "gaap", "audit", "excel", "budgeting", "finance"}},
	{"Design", []string{"photoshop", "figma", "ui", "ux", "design", "visual", "graphic"}},
	{"HR", []string{"recruitment", "hr", "hiring", "onboarding", "employee", "human resources"}},
	{"Sales", []string{"sales", "crm", "lead generation", "b2b", "negotiation", "revenue"}},
	{"Education", []string{"teaching", "curriculum", "classroom", "student", "education", "instructor"}},
}

// fallbackIndustry is used when no category scores at least 2.
const fallbackIndustry = "General"
