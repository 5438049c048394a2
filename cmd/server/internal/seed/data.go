package seed

// Sample corpora for realistic generation.

var firstNames = []string{
	"John", "Jane", "Michael", "Sarah", "David", "Emily", "Robert", "Jessica",
	"William", "Ashley", "James", "Amanda", "Christopher", "Jennifer", "Daniel",
	"Lisa", "Matthew", "Nancy", "Anthony", "Karen", "Mark", "Betty", "Donald",
	"Helen", "Steven", "Sandra", "Paul", "Donna", "Andrew", "Carol", "Joshua",
	"Ruth", "Kenneth", "Sharon", "Kevin", "Michelle", "Brian", "Laura", "George",
	"Sarah", "Timothy", "Kimberly", "Ronald", "Deborah", "Jason", "Dorothy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

var contactDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "example.com"}

var itemNames = []string{
	"Laptop", "Smartphone", "Tablet", "Headphones", "Camera", "Watch", "Speaker",
	"Keyboard", "Mouse", "Monitor", "Charger", "Case", "Screen Protector", "Cable",
	"Adapter", "Stand", "Bag", "Sticker", "Skin", "Grip", "Mount", "Tripod",
	"Lens", "Memory Card", "Battery", "Power Bank", "Bluetooth", "USB Hub",
	"Webcam", "Microphone", "Printer", "Scanner", "Router", "Modem", "Switch",
}

var itemCategories = []string{
	"Electronics", "Computers", "Mobile", "Audio", "Photography", "Wearables",
	"Accessories", "Gaming", "Office", "Home", "Travel", "Sports", "Health",
}

var rootNames = []string{"Company", "Organization", "Corporation", "Enterprise"}

var nodePrefixes = []string{"Department", "Division", "Team", "Group", "Unit", "Section"}

var nodeSuffixes = []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
