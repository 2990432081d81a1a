package chatbot

// Canned replies, sourced from the marketing copy on the website.

const companyText = "PrivacyWeave delivers end-to-end data privacy solutions with " +
	"advanced encryption standards and AI-driven automation to protect your most " +
	"valuable assets. Founded in 2020 by a team of privacy experts, cybersecurity " +
	"professionals, and AI engineers, we serve clients across healthcare, finance, " +
	"and technology. Is there anything specific about us you'd like to know?"

const servicesText = "Here's what we offer:\n" +
	"1. Privacy Automation — automated data discovery, classification, and policy enforcement\n" +
	"2. End-to-End Encryption — protection for data at rest and in transit\n" +
	"3. AI-Powered Assessment — intelligent privacy risk scoring for your data estate\n" +
	"4. Compliance Management — GDPR, CCPA, and DPDP readiness in one dashboard\n" +
	"5. Privacy Analytics — visibility into how sensitive data moves through your organization\n" +
	"Want a demo? Leave your details through our contact form and we'll reach out."

const applyPromptText = "Great! To apply, please share your full name, email, phone " +
	"number, the position you're interested in, and your years of experience. You can " +
	"also upload your resume right here in the chat."

const talentPoolText = "We don't have any openings posted right now, but we're always " +
	"looking for talented people. Share your resume and details with me and we'll keep " +
	"them on file for the next opening."

const greetingText = "Hi! I'm the PrivacyWeave assistant. I can tell you about our " +
	"company, our privacy and compliance services, or current job openings. What would " +
	"you like to know?"
