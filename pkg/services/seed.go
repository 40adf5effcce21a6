package services

import "innovia-cms/pkg/models"

// DemoContent is written on first start when SEED_DEMO_CONTENT is set.
var DemoContent = []models.ContentRecord{
	{
		Title:   "The Future of AI in Cybersecurity",
		Type:    models.TypeArticle,
		Status:  models.StatusPublished,
		Date:    "2024-01-15",
		Excerpt: "Exploring how machine learning algorithms are revolutionizing threat detection...",
		Tags:    []string{"ai", "security"},
	},
	{
		Title:   "Personalized Learning with AI",
		Type:    models.TypeBlog,
		Status:  models.StatusDraft,
		Date:    "2024-01-20",
		Excerpt: "How AI is transforming educational experiences...",
		Tags:    []string{"education"},
	},
	{
		Title:   "Advanced Neural Networks Research",
		Type:    models.TypeResearch,
		Status:  models.StatusPublished,
		Date:    "2024-01-10",
		Excerpt: "Our latest findings on deep learning architectures...",
		Tags:    []string{"research", "deep-learning"},
	},
}
