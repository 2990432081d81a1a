package memory

import (
	"context"

	"github.com/privacyweave/backend/internal/models"
)

// SeedJobListings publishes the current open positions so a fresh process
// starts with a populated careers board.
func (s *Store) SeedJobListings(ctx context.Context) error {
	listings := []models.JobListing{
		{
			Title:        "AI/ML Engineer (0-1 Year Experience)",
			Description:  "Join our innovative team to develop and implement AI/ML solutions for data privacy and compliance automation. You'll work on cutting-edge privacy-preserving AI models and contribute to our machine learning pipeline for data classification and policy automation.",
			Requirements: "Bachelor's degree in Computer Science, AI, or related field. Basic knowledge of Python and machine learning libraries (TensorFlow, PyTorch, or scikit-learn). Understanding of fundamental ML concepts and algorithms. Eagerness to learn privacy-enhancing technologies. Strong analytical and problem-solving skills. Collaborative mindset and ability to work in cross-functional teams.",
			Type:         "Full-time",
			Location:     "Coimbatore",
			Experience:   "Entry Level (0-1 Year)",
			IsActive:     true,
		},
		{
			Title:        "Full Stack Developer (0-1 Year Experience)",
			Description:  "Develop responsive web applications and APIs for our privacy automation platform. You'll help build intuitive interfaces for privacy management tools and contribute to developing scalable backend services that power our data governance solutions.",
			Requirements: "Bachelor's degree in Computer Science or related technical field. Knowledge of JavaScript/TypeScript, HTML, and CSS. Familiarity with React or similar frontend frameworks. Basic understanding of Node.js and RESTful API concepts. Willingness to learn and adapt to new technologies. Passion for creating user-friendly interfaces. Basic understanding of database concepts.",
			Type:         "Full-time",
			Location:     "Coimbatore",
			Experience:   "Entry Level (0-1 Year)",
			IsActive:     true,
		},
		{
			Title:        "Cybersecurity & Encryption Specialist (0-1 Year Experience)",
			Description:  "Help implement end-to-end encryption and security protocols for our privacy-focused applications. You'll work on data protection mechanisms, assist in security assessment of our systems, and help implement encryption standards that ensure our clients' data remains secure.",
			Requirements: "Bachelor's degree in Computer Science, Cybersecurity, or related field. Knowledge of fundamental encryption algorithms and techniques. Basic understanding of network security principles. Interest in privacy regulations (GDPR, CCPA, etc.). Familiarity with security tools and practices. Strong attention to detail. Excellent analytical and problem-solving skills. Eagerness to learn modern security frameworks.",
			Type:         "Full-time",
			Location:     "Coimbatore",
			Experience:   "Entry Level (0-1 Year)",
			IsActive:     true,
		},
	}

	repo := s.JobListings()
	for i := range listings {
		if err := repo.Create(ctx, &listings[i]); err != nil {
			return err
		}
	}
	return nil
}
