package mailer

import (
	"fmt"

	"institute-backend/internal/model"
)

// DefaultFirstName is used in greetings when the submission carried no
// firstName field.
const DefaultFirstName = "Applicant"

// StatusTemplate returns the subject and body for a status notification.
// Rejected gets the decline template; every other status gets the offer
// template. In practice the dashboard only sends on shortlist and rejected.
func StatusTemplate(status, firstName, jobTitle string) (subject, body string) {
	if firstName == "" {
		firstName = DefaultFirstName
	}

	if status == model.StatusRejected {
		subject = fmt.Sprintf("Update on your application for %s", jobTitle)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"Thank you for your interest in the %s position and for the time you invested in your application. "+
				"After careful review, we have decided not to move forward with your candidacy at this time.\n\n"+
				"We encourage you to apply for future openings that match your background.\n\n"+
				"Best regards,\nThe Recruiting Team",
			firstName, jobTitle)
		return subject, body
	}

	subject = fmt.Sprintf("Good news about your application for %s", jobTitle)
	body = fmt.Sprintf(
		"Dear %s,\n\n"+
			"We are pleased to share that your application for the %s position has progressed, "+
			"and we would like to extend you an offer to move forward with us. "+
			"A member of our team will contact you shortly with the next steps.\n\n"+
			"Congratulations!\nThe Recruiting Team",
		firstName, jobTitle)
	return subject, body
}
