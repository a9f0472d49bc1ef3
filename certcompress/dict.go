package certcompress

// commonCertSubstrings seeds the zlib dictionary with byte sequences that
// show up in almost every DER certificate: SEQUENCE headers, the usual
// signature and extension OIDs, RDN attribute types and URL fragments from
// AIA and CRL distribution points. Both peers must use the identical value.
var commonCertSubstrings = []byte("" +
	"\x30\x82" + // SEQUENCE, two-byte length
	"\x02\x01\x02" + // version v3
	"\x06\x09\x2a\x86\x48\x86\xf7\x0d\x01\x01\x0b" + // sha256WithRSAEncryption
	"\x06\x09\x2a\x86\x48\x86\xf7\x0d\x01\x01\x05" + // sha1WithRSAEncryption
	"\x06\x09\x2a\x86\x48\x86\xf7\x0d\x01\x01\x01" + // rsaEncryption
	"\x06\x08\x2a\x86\x48\xce\x3d\x04\x03\x02" + // ecdsa-with-SHA256
	"\x06\x07\x2a\x86\x48\xce\x3d\x02\x01" + // id-ecPublicKey
	"\x06\x08\x2a\x86\x48\xce\x3d\x03\x01\x07" + // prime256v1
	"\x06\x03\x55\x04\x03" + // commonName
	"\x06\x03\x55\x04\x06" + // countryName
	"\x06\x03\x55\x04\x07" + // localityName
	"\x06\x03\x55\x04\x08" + // stateOrProvinceName
	"\x06\x03\x55\x04\x0a" + // organizationName
	"\x06\x03\x55\x04\x0b" + // organizationalUnitName
	"\x06\x03\x55\x1d\x0e" + // subjectKeyIdentifier
	"\x06\x03\x55\x1d\x0f" + // keyUsage
	"\x06\x03\x55\x1d\x11" + // subjectAltName
	"\x06\x03\x55\x1d\x13" + // basicConstraints
	"\x06\x03\x55\x1d\x1f" + // cRLDistributionPoints
	"\x06\x03\x55\x1d\x20" + // certificatePolicies
	"\x06\x03\x55\x1d\x23" + // authorityKeyIdentifier
	"\x06\x08\x2b\x06\x01\x05\x05\x07\x01\x01" + // authorityInfoAccess
	"\x06\x08\x2b\x06\x01\x05\x05\x07\x30\x01" + // OCSP
	"\x06\x08\x2b\x06\x01\x05\x05\x07\x30\x02" + // caIssuers
	"\x06\x08\x2b\x06\x01\x05\x05\x07\x03\x01" + // serverAuth
	"\x06\x08\x2b\x06\x01\x05\x05\x07\x03\x02" + // clientAuth
	"\x30\x1e\x17\x0d" + // Validity with UTCTime bounds
	"\x30\x0d\x06\x09" +
	"\x31\x0b\x30\x09" +
	"\x31\x13\x30\x11" +
	"http://" +
	"https://" +
	"http://crl." +
	"http://ocsp." +
	"http://cacerts." +
	".crl" +
	".crt" +
	".com" +
	".net" +
	".org" +
	"www." +
	"0Z0X" +
	"GTS" +
	"Let's Encrypt" +
	"DigiCert" +
	"GlobalSign" +
	"Certification Authority" +
	"Domain Validation Secure Server CA" +
	"US1" +
	"\x03\x82\x01\x0f\x00\x30\x82\x01\x0a\x02\x82\x01\x01\x00" + // RSA-2048 SPKI header
	"\x02\x03\x01\x00\x01") // public exponent 65537
