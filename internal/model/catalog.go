package model

// SemesterSubjects lists the subjects taught in one semester.
type SemesterSubjects struct {
	Semester string   `json:"semester"`
	Subjects []string `json:"subjects"`
}

// CSITSubjects is the BSc CSIT course catalog used to classify uploads.
var CSITSubjects = []SemesterSubjects{
	{
		Semester: "First Semester",
		Subjects: []string{
			"Introduction to Information Technology",
			"C Programming",
			"Digital Logic",
			"Mathematics I",
			"Physics",
		},
	},
	{
		Semester: "Second Semester",
		Subjects: []string{
			"Discrete Structure",
			"Object Oriented Programming",
			"Microprocessor",
			"Mathematics II",
			"Statistic I",
		},
	},
	{
		Semester: "Third Semester",
		Subjects: []string{
			"Data Structure and Algorithms",
			"Numerical Method",
			"Computer Architecture",
			"Computer Graphics",
			"Statistics II",
		},
	},
	{
		Semester: "Fourth Semester",
		Subjects: []string{
			"Theory of Computation",
			"Computer Networks",
			"Operating System",
			"Database Management System",
			"Artificial Intelligence",
		},
	},
	{
		Semester: "Fifth Semester",
		Subjects: []string{
			"Design and Analysis of Algorithms",
			"System Analysis and Design",
			"Cryptography",
			"Simulation and Modeling",
			"Web Technology",
		},
	},
	{
		Semester: "Sixth Semester",
		Subjects: []string{
			"Software Engineering",
			"Compiler Design and Construction",
			"E-Governance",
			"NET Centric Computing",
			"Technical Writing",
		},
	},
	{
		Semester: "Seventh Semester",
		Subjects: []string{
			"Advanced Java Programming",
			"Data Warehousing and Data Mining",
			"Principles of Management",
		},
	},
	{
		Semester: "Eighth Semester",
		Subjects: []string{
			"Advanced Database",
		},
	},
}
