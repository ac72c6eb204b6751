package knowledge

// Section is one addressable unit of the payment-security corpus.
type Section struct {
	Category string
	Name     string
	Title    string
	Content  string
}

// Corpus categories.
const (
	CategoryRBIGuidelines       = "rbi_guidelines"
	CategoryFraudTypes          = "fraud_types"
	CategorySecurityMeasures    = "security_measures"
	CategoryRegulatoryFramework = "regulatory_framework"
	CategoryIncidentResponse    = "incident_response"
)

func builtinCorpus() []Section {
	return []Section{
		{
			Category: CategoryRBIGuidelines,
			Name:     "upi_overview",
			Title:    "RBI UPI Guidelines Overview",
			Content: `The Reserve Bank of India (RBI) has established comprehensive guidelines for UPI transactions to ensure security and consumer protection.

Key RBI UPI regulations:
- Master Directions on Digital Payment Security Controls, 2021
- Guidelines on Regulation of Payment Aggregators and Gateways, 2020
- Customer Protection Guidelines for Digital Payments

Transaction limits (as per RBI):
- Per transaction limit: Rs 1,00,000 for P2P transfers
- Daily limit: Rs 1,00,000 for most banks
- Merchant transactions: up to Rs 2,00,000 per transaction
- Recurring payments: up to Rs 15,000 per transaction
These limits may vary by bank and can be customized by users.`,
		},
		{
			Category: CategoryRBIGuidelines,
			Name:     "security_requirements",
			Title:    "RBI Mandated Security Controls",
			Content: `RBI mandated security controls for payment providers:

1. Multi-factor authentication, mandatory for transactions above Rs 5,000
2. Device binding: UPI apps must be registered to specific devices, with extra verification for new devices
3. Real-time transaction monitoring with suspicious-pattern detection and immediate alerts
4. Payment data encryption (minimum 256-bit), tokenization, and PCI-DSS compliance
5. Strong customer authentication with biometric support where available`,
		},
		{
			Category: CategoryRBIGuidelines,
			Name:     "consumer_protection",
			Title:    "RBI Consumer Protection Guidelines",
			Content: `RBI consumer protection guidelines for digital payments:

1. Grievance redressal: dedicated customer service channels with a maximum response time of 7 working days, plus an Ombudsman scheme for digital payments
2. Liability framework: zero liability for unauthorized transactions due to bank or system failures; limited liability (Rs 10,000 max) for customer negligence; full protection with prompt reporting
3. Disclosure: transparent fee structures, risk warnings, and clear terms and conditions`,
		},
		{
			Category: CategoryFraudTypes,
			Name:     "common_upi_frauds",
			Title:    "Common UPI and Payment Frauds",
			Content: `Common UPI and payment frauds:

1. SIM swap fraud: fraudsters obtain a duplicate SIM to intercept OTPs. Prevention: prefer app-based authentication.
2. Phishing and vishing: fake websites and calls impersonating bank officials. Prevention: never share credentials over phone or email.
3. QR code fraud: malicious QR codes placed over genuine merchant codes. Prevention: always verify merchant details before paying.
4. UPI ID spoofing: lookalike UPI IDs using trusted names with slight variations. Prevention: verify IDs through official channels.
5. Social engineering: impersonation of authority figures and manufactured urgency. Prevention: always verify independently.
6. Refund fraud: false refund promises requiring an upfront payment. Genuine refunds never require additional payments.`,
		},
		{
			Category: CategoryFraudTypes,
			Name:     "emerging_fraud_patterns",
			Title:    "Emerging Fraud Trends",
			Content: `Latest fraud trends:

1. AI-powered voice cloning: synthetic calls impersonating family members requesting emergency funds
2. Digital arrest scams: impersonation of law enforcement with demands for immediate payment
3. Cryptocurrency scams: UPI payments for non-existent crypto holdings
4. Job and lottery frauds: fake offers requiring security deposits or processing fees
5. Rental and property frauds: advance payments for fake property listings`,
		},
		{
			Category: CategorySecurityMeasures,
			Name:     "personal_security",
			Title:    "Personal Security Guidelines",
			Content: `Personal payment security guidelines:

1. Device security: use a screen lock, keep apps updated, avoid public WiFi for payments, and install apps only from official stores
2. Account security: use a strong unique UPI PIN, enable transaction alerts, and review transaction history regularly
3. Transaction security: always verify recipient details, double-check amounts, and never share OTP or PIN with anyone
4. Information security: never share banking credentials, verify caller identity independently, and avoid suspicious links`,
		},
		{
			Category: CategorySecurityMeasures,
			Name:     "merchant_security",
			Title:    "Merchant Security Guidelines",
			Content: `Security guidelines for merchants:

1. Use verified payment gateway providers with SSL and PCI-DSS compliance
2. Implement fraud detection and real-time transaction monitoring
3. Prefer dynamic QR codes and keep transaction logs secure
4. Collect minimal customer data and train staff on incident response procedures`,
		},
		{
			Category: CategoryRegulatoryFramework,
			Name:     "payment_acts",
			Title:    "Key Payment Laws in India",
			Content: `Key payment laws and regulations in India:

1. Payment and Settlement Systems Act, 2007: the primary legislation governing payment systems, giving RBI regulatory authority
2. Information Technology Act, 2000: covers digital transactions, electronic signatures, and cybercrime penalties
3. Prevention of Money Laundering Act, 2002: KYC and AML requirements, suspicious transaction reporting obligations
4. Reserve Bank of India Act, 1934: RBI's power to regulate and supervise payment system operators
5. Banking Regulation Act, 1949: governs banks providing payment services`,
		},
		{
			Category: CategoryRegulatoryFramework,
			Name:     "international_standards",
			Title:    "International Payment Security Standards",
			Content: `International payment security standards:

1. PCI-DSS: mandatory for entities handling card data, with regular security assessments
2. ISO 27001: information security management and risk frameworks
3. FATF guidelines: anti-money laundering and counter-terrorism financing standards`,
		},
		{
			Category: CategoryIncidentResponse,
			Name:     "fraud_reporting",
			Title:    "Fraud Reporting Process",
			Content: `Step-by-step fraud reporting process:

1. Immediate actions (within 1 hour): block the affected payment method, screenshot the fraudulent transactions, note time, amount, recipient, and call your bank's fraud helpline
2. Bank reporting (within 3 days): file a formal complaint with evidence and obtain a complaint reference number
3. Police complaint (within 7 days for significant amounts): file an FIR with the cybercrime police and keep the complaint number
4. Regulatory escalation: Banking Ombudsman and the RBI Consumer Education and Protection Cell if the bank response is unsatisfactory

Keep transaction receipts, bank statements, and communication records as documentation.`,
		},
		{
			Category: CategoryIncidentResponse,
			Name:     "emergency_contacts",
			Title:    "Emergency Contact Numbers",
			Content: `Important emergency contacts:

National helplines:
- Cybercrime Helpline: 1930
- Banking Fraud Helpline: 1800-425-3800
- RBI Complaint Hotline: 14440
- Consumer Helpline: 1915

Online portals:
- National Cybercrime Reporting Portal: cybercrime.gov.in
- RBI Complaints Portal: cms.rbi.org.in

Report unauthorized transactions to your bank immediately; prompt reporting preserves your liability protection.`,
		},
	}
}
