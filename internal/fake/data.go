package fake

var firstNamesEN = []string{
	"James", "Robert", "John", "Michael", "David", "William", "Richard", "Joseph",
	"Thomas", "Christopher", "Charles", "Daniel", "Matthew", "Anthony", "Mark",
	"Donald", "Steven", "Andrew", "Paul", "Joshua", "Kenneth", "Kevin", "Brian",
	"George", "Timothy", "Ronald", "Edward", "Jason", "Jeffrey", "Ryan",
	"Jacob", "Gary", "Nicholas", "Eric", "Jonathan", "Stephen", "Larry", "Justin",
	"Scott", "Brandon", "Benjamin", "Samuel", "Raymond", "Gregory", "Frank", "Alexander",
	"Patrick", "Jack", "Dennis", "Jerry", "Tyler",
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara", "Susan", "Jessica",
	"Sarah", "Karen", "Lisa", "Nancy", "Betty", "Margaret", "Sandra", "Ashley",
	"Kimberly", "Emily", "Donna", "Michelle", "Dorothy", "Carol", "Amanda", "Melissa",
	"Deborah", "Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia", "Kathleen", "Amy",
	"Angela", "Shirley", "Anna", "Brenda", "Pamela", "Emma", "Nicole", "Helen",
	"Samantha", "Katherine", "Christine", "Debra", "Rachel", "Carolyn", "Janet", "Catherine",
	"Maria", "Heather", "Diane", "Ruth",
}

var firstNamesES = []string{
	"José", "Carlos", "Miguel", "Juan", "Luis", "Antonio", "Francisco", "Pedro",
	"Manuel", "Alejandro", "Ricardo", "Fernando", "Roberto", "Diego", "Andrés",
	"María", "Carmen", "Ana", "Isabel", "Rosa", "Patricia", "Laura", "Elena",
	"Lucia", "Marta", "Paula", "Sandra", "Cristina", "Raquel", "Teresa",
}

var firstNamesFR = []string{
	"Jean", "Pierre", "Michel", "André", "Philippe", "Jacques", "Bernard", "François",
	"Louis", "Henri", "Marie", "Jeanne", "Catherine", "Françoise", "Monique",
	"Nicole", "Sylvie", "Nathalie", "Isabelle", "Sophie",
}

var firstNamesDE = []string{
	"Hans", "Klaus", "Wolfgang", "Peter", "Michael", "Thomas", "Andreas", "Stefan",
	"Markus", "Christian", "Anna", "Maria", "Elisabeth", "Monika", "Ursula",
	"Petra", "Sabine", "Claudia", "Susanne", "Birgit",
}

var firstNamesJA = []string{
	"太郎", "次郎", "健太", "大輔", "翔太", "拓也", "直樹", "雄太", "達也", "剛",
	"花子", "美咲", "さくら", "優子", "真由美", "愛", "美穂", "恵", "裕子", "明美",
}

var lastNamesEN = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen",
	"Hill", "Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera",
	"Campbell", "Mitchell", "Carter", "Roberts", "Turner", "Phillips", "Evans",
	"Collins", "Edwards", "Stewart", "Morris", "Rogers", "Reed",
	"Cook", "Morgan", "Bell", "Murphy", "Bailey", "Cooper", "Richardson", "Cox",
	"Howard", "Ward", "Peterson", "Gray", "James", "Watson", "Brooks", "Kelly",
}

var lastNamesES = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Hernández", "Pérez",
	"Sánchez", "Ramírez", "Torres", "Flores", "Rivera", "Gómez", "Díaz", "Reyes",
	"Morales", "Jiménez", "Ruiz", "Álvarez", "Mendoza",
}

var lastNamesFR = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand",
	"Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Michel", "Garcia",
}

var lastNamesDE = []string{
	"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker",
	"Schulz", "Hoffmann", "Schäfer", "Koch", "Bauer", "Richter", "Klein",
}

var lastNamesJA = []string{
	"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "山本", "中村", "小林", "加藤",
	"吉田", "山田", "佐々木", "山口", "松本", "井上", "木村", "林", "斎藤", "清水",
}

var streetNames = []string{
	"Main", "Oak", "Maple", "Cedar", "Pine", "Elm", "Washington", "Lake", "Hill",
	"Park", "View", "Forest", "River", "Spring", "Valley", "Sunset", "Highland",
	"Broadway", "Madison", "Jefferson", "Lincoln", "Franklin", "Adams", "Jackson",
	"Wilson", "Harrison", "Tyler", "Polk", "Taylor", "Fillmore", "Pierce",
}

var streetSuffixes = []string{
	"Street", "Avenue", "Road", "Boulevard", "Drive", "Lane", "Way", "Court",
	"Place", "Circle", "Trail", "Parkway", "Commons", "Square", "Terrace",
}

// city is a (city, region, postal prefix) triple.
type city struct {
	name   string
	region string
	postal string
}

var usCities = []city{
	{"New York", "NY", "10001"},
	{"Los Angeles", "CA", "90001"},
	{"Chicago", "IL", "60601"},
	{"Houston", "TX", "77001"},
	{"Phoenix", "AZ", "85001"},
	{"Philadelphia", "PA", "19101"},
	{"San Antonio", "TX", "78201"},
	{"San Diego", "CA", "92101"},
	{"Dallas", "TX", "75201"},
	{"San Jose", "CA", "95101"},
	{"Austin", "TX", "78701"},
	{"Jacksonville", "FL", "32099"},
	{"Fort Worth", "TX", "76101"},
	{"Columbus", "OH", "43085"},
	{"Charlotte", "NC", "28201"},
	{"San Francisco", "CA", "94102"},
	{"Indianapolis", "IN", "46201"},
	{"Seattle", "WA", "98101"},
	{"Denver", "CO", "80201"},
	{"Boston", "MA", "02101"},
	{"Nashville", "TN", "37201"},
	{"Detroit", "MI", "48201"},
	{"Portland", "OR", "97201"},
	{"Las Vegas", "NV", "89101"},
	{"Memphis", "TN", "38101"},
	{"Louisville", "KY", "40201"},
	{"Baltimore", "MD", "21201"},
	{"Milwaukee", "WI", "53201"},
	{"Albuquerque", "NM", "87101"},
	{"Tucson", "AZ", "85701"},
}

var ukCities = []city{
	{"London", "Greater London", "EC1A"},
	{"Birmingham", "West Midlands", "B1"},
	{"Manchester", "Greater Manchester", "M1"},
	{"Glasgow", "Scotland", "G1"},
	{"Liverpool", "Merseyside", "L1"},
	{"Bristol", "Bristol", "BS1"},
	{"Sheffield", "South Yorkshire", "S1"},
	{"Leeds", "West Yorkshire", "LS1"},
	{"Edinburgh", "Scotland", "EH1"},
	{"Leicester", "Leicestershire", "LE1"},
}

var caCities = []city{
	{"Toronto", "ON", "M5V"},
	{"Montreal", "QC", "H2Y"},
	{"Vancouver", "BC", "V6B"},
	{"Calgary", "AB", "T2P"},
	{"Edmonton", "AB", "T5J"},
	{"Ottawa", "ON", "K1P"},
	{"Winnipeg", "MB", "R3C"},
	{"Quebec City", "QC", "G1R"},
	{"Hamilton", "ON", "L8P"},
	{"Halifax", "NS", "B3H"},
}

const (
	ukPostalLetters = "ABCDEFGHJKLMNPRSTUVWXY"
	caPostalLetters = "ABCEGHJKLMNPRSTVWXYZ"
)

var companyPrefixes = []string{
	"Global", "United", "National", "American", "International", "Pacific",
	"Atlantic", "Northern", "Southern", "Western", "Eastern", "Central",
	"Premier", "Prime", "Elite", "Advanced", "Modern", "Dynamic", "Strategic",
}

var companyBases = []string{
	"Tech", "Systems", "Solutions", "Industries", "Services", "Group",
	"Corp", "Holdings", "Enterprises", "Partners", "Associates", "Networks",
	"Consulting", "Digital", "Media", "Software", "Data", "Cloud", "Labs",
}

var companySuffixes = []string{
	"Inc", "LLC", "Corp", "Ltd", "Co", "Group", "Holdings", "International",
}

// EmailDomains are reserved-looking domains used for generated addresses.
var EmailDomains = []string{
	"example.com", "test.org", "sample.net", "demo.io", "fake.email",
	"mailtest.com", "testmail.org", "samplemail.net", "fakemail.io",
	"corporate.test", "business.example", "company.demo",
}
