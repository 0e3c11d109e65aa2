package search

import (
	"context"
	"strings"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

// MockSearcher returns built-in results keyed on words in the query
type MockSearcher struct{}

func (MockSearcher) Name() string { return "mock" }

func (MockSearcher) Search(_ context.Context, query, model string, _ Keys) ([]models.SearchResult, error) {
	switch model {
	case ModelDeepseekCoder:
		return deepseekCoderResults(query), nil
	case ModelLlama3:
		return llama3Results(query), nil
	default:
		return defaultResults(query), nil
	}
}

type rule struct {
	keywords []string
	results  []models.SearchResult
}

func (r rule) matches(q string) bool {
	for _, k := range r.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

func apply(query string, rules []rule, always models.SearchResult) []models.SearchResult {
	q := strings.ToLower(query)
	var results []models.SearchResult
	for _, r := range rules {
		if r.matches(q) {
			results = append(results, r.results...)
		}
	}
	return append(results, always)
}

var (
	webWords    = []string{"web", "website", "webapp"}
	mobileWords = []string{"mobile", "app", "ios", "android"}
	mlWords     = []string{"ml", "machine learning", "ai"}
)

func deepseekCoderResults(query string) []models.SearchResult {
	return apply(query, []rule{
		{webWords, []models.SearchResult{
			{Title: "Modern Frontend Architecture with React and GraphQL", Summary: "DeepSeek analysis of component-based architecture patterns using React, GraphQL, and state management solutions.", Source: "DeepSeek Code Analysis Repository", RelevanceScore: 0.97, URL: "https://example.com/deepseek-web-architecture"},
			{Title: "Backend Service Design for Web Applications", Summary: "Optimized service architecture for web backends with focus on microservices and API gateway patterns.", Source: "DeepSeek Architecture Database", RelevanceScore: 0.92, URL: "https://example.com/deepseek-backend-design"},
		}},
		{mlWords, []models.SearchResult{
			{Title: "ML Pipeline Implementation for Production Applications", Summary: "Source code examples and architecture for production-grade machine learning pipelines with focus on MLOps.", Source: "DeepSeek ML Engineering Resources", RelevanceScore: 0.98, URL: "https://example.com/deepseek-ml-pipelines"},
		}},
	}, models.SearchResult{Title: "Code Repository Structure Best Practices", Summary: "DeepSeek's analysis of optimal code organization for maintainability and collaboration.", Source: "DeepSeek Code Architecture Guide", RelevanceScore: 0.89, URL: "https://example.com/deepseek-repo-structure"})
}

func llama3Results(query string) []models.SearchResult {
	return apply(query, []rule{
		{webWords, []models.SearchResult{
			{Title: "Web Application Architecture Trends 2025", Summary: "Analysis of emerging architecture patterns for modern web applications including JAMstack and serverless.", Source: "Llama Knowledge Database", RelevanceScore: 0.96, URL: "https://example.com/llama3-web-trends"},
		}},
		{mobileWords, []models.SearchResult{
			{Title: "Cross-Platform vs. Native Mobile Architecture", Summary: "Comprehensive comparison of architecture approaches for mobile application development with performance benchmarks.", Source: "Llama Mobile Dev Insights", RelevanceScore: 0.94, URL: "https://example.com/llama3-mobile-architecture"},
		}},
		{mlWords, []models.SearchResult{
			{Title: "Machine Learning Architecture for Enterprise Applications", Summary: "Enterprise-grade ML system design with distributed training and inference optimization.", Source: "Llama AI Systems Guide", RelevanceScore: 0.98, URL: "https://example.com/llama3-ml-enterprise"},
			{Title: "Data Pipeline Design for ML Training", Summary: "Efficient data pipelines for ML model training with ETL best practices and optimization techniques.", Source: "Llama Data Engineering Handbook", RelevanceScore: 0.95, URL: "https://example.com/llama3-data-pipelines"},
		}},
	}, models.SearchResult{Title: "System Design Principles for Scalable Applications", Summary: "Foundational principles for designing highly scalable and resilient software architectures.", Source: "Llama Systems Architecture Guide", RelevanceScore: 0.90, URL: "https://example.com/llama3-system-design"})
}

func defaultResults(query string) []models.SearchResult {
	return apply(query, []rule{
		{webWords, []models.SearchResult{
			{Title: "Modern Web Application Architecture Patterns", Summary: "Overview of current best practices for web application architecture including SPA, PWA, and serverless approaches.", Source: "Web Development Journal", RelevanceScore: 0.95, URL: "https://example.com/web-architecture"},
		}},
		{mobileWords, []models.SearchResult{
			{Title: "Mobile App Architecture: Native vs Cross-platform", Summary: "Comparative analysis of native app development versus cross-platform frameworks like React Native and Flutter.", Source: "Mobile Dev Weekly", RelevanceScore: 0.92, URL: "https://example.com/mobile-architecture"},
		}},
		{[]string{"authentication", "auth", "login"}, []models.SearchResult{
			{Title: "Authentication Strategies for Modern Applications", Summary: "Comprehensive guide to implementing secure authentication including OAuth, JWT, and biometric options.", Source: "Security Engineering Blog", RelevanceScore: 0.88, URL: "https://example.com/auth-patterns"},
		}},
		{[]string{"payment", "ecommerce", "shop"}, []models.SearchResult{
			{Title: "E-commerce Payment Processing Architecture", Summary: "Best practices for implementing secure and scalable payment systems in e-commerce applications.", Source: "Fintech Architecture Review", RelevanceScore: 0.9, URL: "https://example.com/payment-systems"},
		}},
	}, models.SearchResult{Title: "Scalable Software Architecture Fundamentals", Summary: "Core principles of building scalable software architectures that can handle growth and changing requirements.", Source: "Software Architecture Journal", RelevanceScore: 0.85, URL: "https://example.com/scalable-architecture"})
}
