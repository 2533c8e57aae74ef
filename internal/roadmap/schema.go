package roadmap

// Leaf is a single completable item within a stage.
type Leaf struct {
	Key   string
	Label string
}

// Stage is one fixed step of the learning roadmap.
type Stage struct {
	ID       string
	Title    string
	Duration string
	Note     string
	Leaves   []Leaf
}

// Schema is the fixed four-stage curriculum. It is not extensible at
// runtime; stored progress is always normalized against it.
var Schema = []Stage{
	{
		ID:       "step1",
		Title:    "Step 1: Fundamentals",
		Duration: "1-2 months",
		Note:     "Project: Task Management API with priority queues, trie-based search, and hash map categorization",
		Leaves: []Leaf{
			{Key: "fundamentals", Label: "Master core DSA (arrays, linked lists, trees, hash maps)"},
			{Key: "taskManagementAPI", Label: "Build Task Management API with TypeScript & Prisma"},
			{Key: "leetcodeProblems", Label: "Solve 50+ LeetCode problems (easy/medium)"},
		},
	},
	{
		ID:       "step2",
		Title:    "Step 2: Intermediate",
		Duration: "2-3 months",
		Note:     "Project: URL Shortener with consistent hashing, sliding window rate limiting, and Redis caching",
		Leaves: []Leaf{
			{Key: "intermediateTopics", Label: "Advanced DSA (graphs, DP, tries, segment trees)"},
			{Key: "urlShortener", Label: "Build URL Shortener with Redis & rate limiting"},
			{Key: "systemDesign", Label: "Learn system design & caching strategies"},
		},
	},
	{
		ID:       "step3",
		Title:    "Step 3: Advanced",
		Duration: "2-3 months",
		Note:     "Project: Recommendation System using graph algorithms, BFS/DFS, and distributed caching",
		Leaves: []Leaf{
			{Key: "advancedTopics", Label: "Master graph algorithms & complex DP patterns"},
			{Key: "recommendationSystem", Label: "Build Recommendation System with Neo4j & graphs"},
			{Key: "openSource", Label: "Contribute to open source projects"},
		},
	},
	{
		ID:       "step4",
		Title:    "Step 4: Portfolio & Jobs",
		Duration: "1-2 months",
		Note:     "Goal: Land a high-paying remote role (10+ LPA) with strong DSA & system design skills",
		Leaves: []Leaf{
			{Key: "portfolio", Label: "Deploy projects & create portfolio documentation"},
			{Key: "interviews", Label: "Practice system design & coding interviews"},
			{Key: "networking", Label: "Network & apply for high-impact roles"},
		},
	},
}

// Milestone is one column of the 6-month timeline.
type Milestone struct {
	Period  string
	Summary string
	Points  []string
}

// Timeline is the static 6-month plan shown beneath the stages.
var Timeline = []Milestone{
	{
		Period:  "Months 1-2",
		Summary: "Core DSA + Task Management API",
		Points:  []string{"Arrays, linked lists, stacks, queues", "Hash maps, trees, basic sorting", "TypeScript + Prisma project"},
	},
	{
		Period:  "Months 3-4",
		Summary: "Intermediate DSA + URL Shortener",
		Points:  []string{"Graphs, DP, advanced trees", "System design concepts", "Redis + rate limiting"},
	},
	{
		Period:  "Months 5-6",
		Summary: "Advanced + Job Preparation",
		Points:  []string{"Complex algorithms", "Recommendation system", "Portfolio + interviews"},
	},
}

// Resource is an external learning link.
type Resource struct {
	Name        string
	URL         string
	Description string
}

// Resources lists the recommended learning material.
var Resources = []Resource{
	{Name: "LeetCode", URL: "https://leetcode.com/problemset/", Description: "Practice coding problems"},
	{Name: "NeetCode", URL: "https://neetcode.io/", Description: "Curated problem patterns"},
	{Name: "AlgoExpert", URL: "https://www.algoexpert.io/", Description: "Structured learning path"},
	{Name: "System Design Primer", URL: "https://github.com/donnemartin/system-design-primer", Description: "System design concepts"},
	{Name: "Designing Data-Intensive Applications", URL: "https://dataintensive.net/", Description: "Advanced system design book"},
}

// FindStage returns the stage with the given ID.
func FindStage(id string) (Stage, bool) {
	for _, s := range Schema {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// hasLeaf reports whether stage id defines leaf key.
func hasLeaf(id, key string) bool {
	stage, ok := FindStage(id)
	if !ok {
		return false
	}
	for _, l := range stage.Leaves {
		if l.Key == key {
			return true
		}
	}
	return false
}
