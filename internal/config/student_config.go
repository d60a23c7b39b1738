package config

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Course labels as stored on student records.
const (
	CourseBTech    = "B.Tech"
	CourseDiploma  = "Diploma"
	CoursePharmacy = "Pharmacy"
	CourseDegree   = "Degree"
)

// CourseBranches maps a course label to its accepted branches.
var CourseBranches = map[string][]string{
	CourseBTech:    {"CSE", "ECE", "EEE", "MECH", "CIVIL"},
	CourseDiploma:  {"CSE", "ECE", "EEE", "MECH", "CIVIL"},
	CoursePharmacy: {"B.Pharmacy"},
	CourseDegree:   {"B.Sc", "B.Com", "BBA"},
}

// CourseMaxYear maps a course label to its final year of study.
var CourseMaxYear = map[string]int{
	CourseBTech:    4,
	CourseDiploma:  3,
	CoursePharmacy: 4,
	CourseDegree:   3,
}

const (
	// Hostel room numbers are in [MinRoomNumber, MaxRoomNumber].
	MinRoomNumber = 30
	MaxRoomNumber = 40

	GeneratedPasswordLength  = 10
	GeneratedPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)
