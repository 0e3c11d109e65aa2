package analysis

import (
	"strings"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/models"
)

var (
	frontendFramework = models.Framework{Name: "Frontend Framework", Description: "Modern reactive frontend framework", URL: "https://reactjs.org/", Popularity: 90}
	backendAPI        = models.Framework{Name: "Backend API", Description: "RESTful API service layer", URL: "https://expressjs.com/", Popularity: 85}
	database          = models.Framework{Name: "Database", Description: "Scalable database solution", URL: "https://www.postgresql.org/", Popularity: 88}
	authService       = models.Framework{Name: "Authentication Service", Description: "Secure user authentication and authorization", URL: "https://auth0.com/", Popularity: 80}
)

// projectTypeFrameworks is keyed by normalized project type
var projectTypeFrameworks = map[string][]models.Framework{
	"web": {frontendFramework, backendAPI, database},
	"mobile": {
		{Name: "React Native", Description: "Cross-platform mobile UI framework", URL: "https://reactnative.dev/", Popularity: 88},
		backendAPI,
		database,
	},
	"api": {
		backendAPI,
		{Name: "OpenAPI", Description: "Contract-first API description", URL: "https://www.openapis.org/", Popularity: 82},
		database,
	},
	"data": {
		{Name: "Apache Kafka", Description: "Distributed event streaming for data pipelines", URL: "https://kafka.apache.org/", Popularity: 86},
		{Name: "Apache Spark", Description: "Large-scale data processing engine", URL: "https://spark.apache.org/", Popularity: 84},
		database,
	},
	"ml": {
		{Name: "PyTorch", Description: "Machine learning framework", URL: "https://pytorch.org/", Popularity: 90},
		{Name: "FastAPI", Description: "Python API framework for model serving", URL: "https://fastapi.tiangolo.com/", Popularity: 87},
		database,
	},
	"iot": {
		{Name: "MQTT Broker", Description: "Lightweight messaging for devices", URL: "https://mqtt.org/", Popularity: 83},
		{Name: "Time-Series Database", Description: "Storage for sensor readings", URL: "https://www.timescale.com/", Popularity: 78},
		backendAPI,
	},
	"healthcare": {
		frontendFramework,
		backendAPI,
		{Name: "HL7 FHIR Server", Description: "Interoperable healthcare records exchange", URL: "https://hl7.org/fhir/", Popularity: 82},
		database,
	},
}

var projectTypeAliases = map[string]string{
	"webapp":           "web",
	"website":          "web",
	"ai":               "ml",
	"machine learning": "ml",
}

// FrameworksFor selects frameworks by project type, adding an authentication
// service when the auth feature is requested
func FrameworksFor(req models.ProjectRequirements) []models.Framework {
	key := strings.ToLower(strings.TrimSpace(req.ProjectType))
	if alias, ok := projectTypeAliases[key]; ok {
		key = alias
	}
	base, ok := projectTypeFrameworks[key]
	if req.IsHealthcare() {
		base, ok = projectTypeFrameworks["healthcare"], true
	}
	if !ok {
		base = projectTypeFrameworks["web"]
	}

	frameworks := append([]models.Framework(nil), base...)
	if req.HasFeature("auth") || req.HasFeature("authentication") {
		frameworks = append(frameworks, authService)
	}
	return frameworks
}

var featureLibraries = []struct {
	features []string
	library  models.Library
}{
	{[]string{"auth", "authentication"}, models.Library{Name: "Passport.js", Description: "Authentication middleware", URL: "https://www.passportjs.org/", Popularity: 85}},
	{[]string{"payments", "payment"}, models.Library{Name: "Stripe SDK", Description: "Payment processing", URL: "https://stripe.com/docs/libraries", Popularity: 90}},
	{[]string{"realtime", "chat"}, models.Library{Name: "Socket.IO", Description: "Bidirectional real-time communication", URL: "https://socket.io/", Popularity: 88}},
	{[]string{"search"}, models.Library{Name: "Elasticsearch Client", Description: "Full-text search integration", URL: "https://www.elastic.co/", Popularity: 84}},
	{[]string{"analytics", "reporting", "dashboard"}, models.Library{Name: "Chart.js", Description: "Charts for dashboards and reports", URL: "https://www.chartjs.org/", Popularity: 86}},
	{[]string{"notifications", "notification"}, models.Library{Name: "Firebase Cloud Messaging", Description: "Push notifications", URL: "https://firebase.google.com/docs/cloud-messaging", Popularity: 83}},
	{[]string{"fileupload", "uploads", "storage"}, models.Library{Name: "Multer", Description: "Multipart file upload handling", URL: "https://github.com/expressjs/multer", Popularity: 80}},
}

var defaultLibraries = []models.Library{
	{Name: "Axios", Description: "Promise based HTTP client", URL: "https://axios-http.com/", Popularity: 92},
	{Name: "Lodash", Description: "Utility library for common data operations", URL: "https://lodash.com/", Popularity: 89},
}

// LibrariesFor selects libraries by requested features
func LibrariesFor(req models.ProjectRequirements) []models.Library {
	libraries := append([]models.Library(nil), defaultLibraries...)
	for _, fl := range featureLibraries {
		for _, f := range fl.features {
			if req.HasFeature(f) {
				libraries = append(libraries, fl.library)
				break
			}
		}
	}
	return libraries
}

var deploymentMetrics = map[string]models.DeploymentMetrics{
	"aws elastic beanstalk":    {Performance: 80, Scalability: 85, Cost: 60, Maintenance: 75, Security: 80},
	"heroku":                   {Performance: 75, Scalability: 70, Cost: 65, Maintenance: 85, Security: 75},
	"digital ocean":            {Performance: 70, Scalability: 75, Cost: 80, Maintenance: 70, Security: 70},
	"aws ecs/eks":              {Performance: 90, Scalability: 95, Cost: 50, Maintenance: 60, Security: 85},
	"google kubernetes engine": {Performance: 85, Scalability: 90, Cost: 55, Maintenance: 65, Security: 80},
	"azure app service":        {Performance: 80, Scalability: 80, Cost: 60, Maintenance: 75, Security: 80},
	"vercel":                   {Performance: 85, Scalability: 75, Cost: 70, Maintenance: 90, Security: 75},
	"netlify":                  {Performance: 80, Scalability: 70, Cost: 75, Maintenance: 90, Security: 70},
}

// MetricsFor scores a deployment option by name; unknown names score 70 across the board
func MetricsFor(name string) models.DeploymentMetrics {
	if m, ok := deploymentMetrics[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return models.DeploymentMetrics{Performance: 70, Scalability: 70, Cost: 70, Maintenance: 70, Security: 70}
}

func deployment(name, description, cost string) models.DeploymentOption {
	return models.DeploymentOption{Name: name, Description: description, CostEstimate: cost, Metrics: MetricsFor(name)}
}

// DeploymentOptions selects hosting options by scale, or size when scale is empty.
// Container deployment is always offered.
func DeploymentOptions(req models.ProjectRequirements) []models.DeploymentOption {
	var options []models.DeploymentOption
	switch req.EffectiveScale() {
	case "small", "low":
		options = append(options,
			deployment("Shared Hosting", "Cost-effective solution for small applications", "$10-50/month"),
			deployment("Heroku", "Managed platform with minimal operations", "$25-100/month"),
		)
	case "medium":
		options = append(options,
			deployment("Cloud Platform", "Scalable cloud infrastructure", "$100-500/month"),
			deployment("AWS Elastic Beanstalk", "Managed application hosting on AWS", "$100-400/month"),
		)
	case "large", "high":
		options = append(options,
			deployment("Cloud Platform", "Scalable cloud infrastructure", "$100-500/month"),
			deployment("AWS ECS/EKS", "Container orchestration for large workloads", "$500-2000/month"),
		)
	case "enterprise":
		options = append(options,
			deployment("AWS ECS/EKS", "Container orchestration for large workloads", "$500-2000/month"),
			deployment("Google Kubernetes Engine", "Managed Kubernetes with global reach", "$1000-5000/month"),
		)
	}
	return append(options, deployment("Container Deployment", "Docker-based deployment for flexibility", "$50-200/month"))
}

var projectTypeNames = map[string]string{
	"web":     "Web Application",
	"webapp":  "Web Application",
	"mobile":  "Mobile Application",
	"api":     "API Service",
	"desktop": "Desktop Application",
	"ai":      "AI/ML System",
	"iot":     "IoT System",
	"data":    "Data Pipeline",
	"ml":      "Machine Learning Project",
}

// FormatProjectType returns the display name of a project type
func FormatProjectType(projectType string) string {
	if name, ok := projectTypeNames[projectType]; ok {
		return name
	}
	return projectType
}
