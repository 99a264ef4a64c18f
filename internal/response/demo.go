package response

// DemoQuestions are the sample questions offered to new users.
var DemoQuestions = []string{
	"What is photosynthesis and why is it important for life on Earth?",
	"Explain the water cycle in your own words.",
	"What causes the seasons on Earth?",
	"How does gravity work and why don't we float away?",
	"What is the difference between weather and climate?",
	"Explain how plants get their energy to grow.",
	"Why do we have day and night?",
	"What happens to water when it evaporates?",
}

// demoCatalog holds curated batches keyed by exact question text.
var demoCatalog = map[string][]StudentResponse{
	"What is photosynthesis and why is it important for life on Earth?": {
		{ID: 1, Quality: QualityStrong, Content: "Photosynthesis is the process where plants use sunlight, water, and carbon dioxide to make their own food (glucose) and release oxygen as a byproduct. This is crucial for life because it provides oxygen for animals to breathe and forms the base of food chains. Plants convert light energy into chemical energy, which sustains most ecosystems on Earth."},
		{ID: 2, Quality: QualityAverage, Content: "Photosynthesis is when plants make food using sunlight. They take in CO2 and water and make sugar and oxygen. It's important because animals need the oxygen to breathe and we eat plants for energy."},
		{ID: 3, Quality: QualityWeak, Content: "Plants do photosynthesis to make food from the sun. They breathe in oxygen and breathe out carbon dioxide, kind of like the opposite of humans. It's important because plants give us food."},
		{ID: 4, Quality: QualityStrong, Content: "Photosynthesis occurs in chloroplasts using chlorophyll to capture light energy. The process involves light-dependent and light-independent reactions, ultimately converting CO2 and H2O into glucose while releasing O2. This process is fundamental to life as it produces virtually all atmospheric oxygen and forms the foundation of food webs through primary production."},
		{ID: 5, Quality: QualityAverage, Content: "Plants use photosynthesis to get energy from sunlight. They need water and carbon dioxide too. The oxygen they make is good for us to breathe. Without plants doing this, we wouldn't have enough oxygen."},
		{ID: 6, Quality: QualityWeak, Content: "I think photosynthesis is how plants eat sunlight? Like they absorb it through their leaves and then they can grow. It's important because plants make oxygen and we need oxygen to live. Without plants we would all die."},
		{ID: 7, Quality: QualityStrong, Content: "Photosynthesis is a biochemical process that occurs in the chloroplasts of plant cells, where chlorophyll captures photons and converts them into chemical energy. This process not only produces glucose for plant metabolism but also releases oxygen as a waste product, which has fundamentally shaped Earth's atmosphere and enabled aerobic life to evolve."},
		{ID: 8, Quality: QualityAverage, Content: "Plants do photosynthesis to make their food. They use sun, water, and air to do this. The oxygen they make helps animals breathe. It's really important for all living things."},
		{ID: 9, Quality: QualityAverage, Content: "Photosynthesis is when plants turn sunlight into sugar. I think it happens in the green parts of plants. Plants are important because they clean the air and give us oxygen to breathe."},
		{ID: 10, Quality: QualityWeak, Content: "Plants eat sunlight and water and make oxygen. That's photosynthesis. It's important because animals need oxygen and plants need to eat too. I don't really know much more about it."},
		{ID: 11, Quality: QualityStrong, Content: "Photosynthesis is the fundamental process by which autotrophic organisms convert inorganic compounds into organic matter using light energy. This process involves two main stages: the light reactions and the Calvin cycle, resulting in the production of glucose and the release of oxygen, which is essential for maintaining atmospheric balance."},
		{ID: 12, Quality: QualityAverage, Content: "Plants need sunlight to make their own food through photosynthesis. They also need carbon dioxide and water. When they do this, they release oxygen which is what we breathe. So photosynthesis is really important for keeping us alive."},
		{ID: 13, Quality: QualityWeak, Content: "I'm not really sure how photosynthesis works but I know plants need sunlight. Maybe they absorb it somehow? It's important because plants give us food and oxygen I think."},
		{ID: 14, Quality: QualityStrong, Content: "Photosynthesis allows plants to synthesize organic compounds from carbon dioxide and water using light energy, typically from the sun. This process occurs primarily in the leaves and involves chlorophyll molecules that absorb light. The oxygen produced is essential for respiration in most living organisms."},
		{ID: 15, Quality: QualityAverage, Content: "Photosynthesis is how plants make food from sunlight. They take in carbon dioxide from the air and water from their roots. The energy from sunlight helps them combine these to make sugar for food. As a bonus, they release oxygen that animals need to breathe."},
	},
}

// DemoResponses returns a copy of the curated batch for question, matched
// exactly. ok is false when the question is not in the catalog.
func DemoResponses(question string) (responses []StudentResponse, ok bool) {
	curated, ok := demoCatalog[question]
	if !ok {
		return nil, false
	}
	out := make([]StudentResponse, len(curated))
	copy(out, curated)
	return out, true
}
