package coursework

// SubmissionsByAssignment indexes a student's submissions by assignment ID.
// The first submission seen for an assignment wins.
func SubmissionsByAssignment(subs []Submission, studentID string) map[string]Submission {
	idx := make(map[string]Submission, len(subs))
	for _, sub := range subs {
		if studentID != "" && sub.StudentID != studentID {
			continue
		}
		if _, ok := idx[sub.AssignmentID]; !ok {
			idx[sub.AssignmentID] = sub
		}
	}
	return idx
}

// Partition splits assignments into the ones studentID has not submitted yet
// and the ones they have. Order of assignments is preserved in both halves.
func Partition(assignments []Assignment, subs []Submission, studentID string) (pending, completed []Assignment) {
	submitted := SubmissionsByAssignment(subs, studentID)
	pending = make([]Assignment, 0, len(assignments))
	completed = make([]Assignment, 0, len(submitted))
	for _, asg := range assignments {
		if _, ok := submitted[asg.ID]; ok {
			completed = append(completed, asg)
		} else {
			pending = append(pending, asg)
		}
	}
	return pending, completed
}

// CountByAssignment counts submissions per assignment ID.
func CountByAssignment(subs []Submission) map[string]int {
	counts := make(map[string]int, len(subs))
	for _, sub := range subs {
		counts[sub.AssignmentID]++
	}
	return counts
}
